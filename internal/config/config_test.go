package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/sql-snake/internal/games/snake"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	if got, want := embeddedDefault(), Default(); !reflect.DeepEqual(got, want) {
		t.Errorf("embedded default differs from Default():\n got %+v\nwant %+v", got, want)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestDefaultGameSettings(t *testing.T) {
	got := Default().GameSettings()
	want := snake.DefaultSettings()

	if got != want {
		t.Errorf("GameSettings() = %+v, want %+v", got, want)
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`game:
  tile_count: 30
quiz:
  mode: remote
  api_url: http://quiz.example:5000
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Game.TileCount != 30 {
		t.Errorf("tile_count = %d, want 30", cfg.Game.TileCount)
	}
	if cfg.Game.LockChance != 0.3 {
		t.Errorf("unset values should keep defaults, lock_chance = %g", cfg.Game.LockChance)
	}
	if !cfg.Remote() || cfg.Quiz.APIURL != "http://quiz.example:5000" {
		t.Errorf("quiz = %+v", cfg.Quiz)
	}

	s := cfg.GameSettings()
	if s.Origin != (snake.Point{X: 15, Y: 15}) {
		t.Errorf("origin = %v, want board center", s.Origin)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("game: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("game:\n  lock_chance: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("expected validation error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny board", func(c *Config) { c.Game.TileCount = 3 }},
		{"negative lock chance", func(c *Config) { c.Game.LockChance = -0.1 }},
		{"zero base speed", func(c *Config) { c.Game.Speed.BaseMs = 0 }},
		{"zero points per level", func(c *Config) { c.Game.PointsPerLevel = 0 }},
		{"unknown difficulty", func(c *Config) { c.Game.Difficulty = "insane" }},
		{"unknown quiz mode", func(c *Config) { c.Quiz.Mode = "carrier-pigeon" }},
		{"remote without url", func(c *Config) { c.Quiz.Mode = QuizModeRemote; c.Quiz.APIURL = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	easy := Default()
	ApplyPreset(&easy, DifficultyEasy)
	hard := Default()
	ApplyPreset(&hard, DifficultyHard)

	if easy.Game.LockChance >= hard.Game.LockChance {
		t.Errorf("easy lock chance %g should be below hard %g", easy.Game.LockChance, hard.Game.LockChance)
	}
	if easy.GameSettings().Interval(1) <= hard.GameSettings().Interval(1) {
		t.Error("easy should tick slower than hard")
	}

	fixed := Default()
	ApplyPreset(&fixed, DifficultyFixed)
	s := fixed.GameSettings()
	if s.Interval(1) != s.Interval(20) || s.Interval(1) != 150*time.Millisecond {
		t.Errorf("fixed preset should keep a constant interval, got %v and %v", s.Interval(1), s.Interval(20))
	}
	if !IsFixedPreset(fixed.Game.Difficulty) {
		t.Error("fixed preset not recorded")
	}
}

func TestFixedDifficultyFromFileKeepsSpeed(t *testing.T) {
	cfg := Default()
	cfg.Game.Difficulty = DifficultyFixed
	cfg.Game.Speed.StepMs = 25

	s := cfg.GameSettings()
	if s.IntervalStep != 0 {
		t.Errorf("IntervalStep = %v, expected 0 for the fixed preset", s.IntervalStep)
	}
	if s.Interval(1) != s.Interval(10) {
		t.Errorf("interval changed with level: %v vs %v", s.Interval(1), s.Interval(10))
	}
}
