// Package config provides YAML-based configuration loading and difficulty
// presets for SQL Snake.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/sql-snake/internal/games/snake"
)

// Config is the whole application configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Quiz    QuizConfig    `yaml:"quiz"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	SSH     SSHConfig     `yaml:"ssh"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig defines the board and pacing.
type GameConfig struct {
	TileCount      int              `yaml:"tile_count"`
	LockChance     float64          `yaml:"lock_chance"` // Probability that new food is locked
	PointsPerLevel int              `yaml:"points_per_level"`
	ResolveDelayMs int              `yaml:"resolve_delay_ms"` // Success feedback before play resumes
	Speed          SpeedConfig      `yaml:"speed"`
	Difficulty     DifficultyPreset `yaml:"difficulty"`
}

// SpeedConfig defines the tick interval formula: max(base - level*step, min).
type SpeedConfig struct {
	BaseMs int `yaml:"base_ms"`
	StepMs int `yaml:"step_ms"`
	MinMs  int `yaml:"min_ms"`
}

// QuizConfig selects where questions come from.
type QuizConfig struct {
	Mode      string `yaml:"mode"`    // "local" or "remote"
	APIURL    string `yaml:"api_url"` // Used in remote mode
	TimeoutMs int    `yaml:"timeout_ms"`
	Username  string `yaml:"username"` // Empty means the OS user
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the quiz HTTP API.
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Metrics bool   `yaml:"metrics"`
}

// SSHConfig configures the SSH arcade.
type SSHConfig struct {
	Addr           string `yaml:"addr"` // Empty disables SSH serving
	HostKeyPath    string `yaml:"host_key_path"`
	IdleTimeoutSec int    `yaml:"idle_timeout_sec"`
	MaxTimeoutSec  int    `yaml:"max_timeout_sec"`
}

// LogConfig configures charmbracelet/log output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Empty discards logs in the TUI, stderr for servers
}

// Remote reports whether questions come from the HTTP API.
func (c Config) Remote() bool {
	return c.Quiz.Mode == QuizModeRemote
}

// Quiz modes.
const (
	QuizModeLocal  = "local"
	QuizModeRemote = "remote"
)

// Validate rejects values the game cannot run with.
func (c Config) Validate() error {
	if c.Game.TileCount < 4 {
		return fmt.Errorf("config: game.tile_count must be at least 4, got %d", c.Game.TileCount)
	}
	if c.Game.LockChance < 0 || c.Game.LockChance > 1 {
		return fmt.Errorf("config: game.lock_chance must be within [0, 1], got %g", c.Game.LockChance)
	}
	if c.Game.Speed.BaseMs <= 0 || c.Game.Speed.MinMs <= 0 || c.Game.Speed.StepMs < 0 {
		return fmt.Errorf("config: game.speed values must be positive")
	}
	if c.Game.PointsPerLevel <= 0 {
		return fmt.Errorf("config: game.points_per_level must be positive, got %d", c.Game.PointsPerLevel)
	}
	if _, err := ParsePreset(string(c.Game.Difficulty)); err != nil {
		return err
	}
	switch c.Quiz.Mode {
	case QuizModeLocal:
	case QuizModeRemote:
		if c.Quiz.APIURL == "" {
			return fmt.Errorf("config: quiz.api_url is required in remote mode")
		}
	default:
		return fmt.Errorf("config: unknown quiz.mode %q", c.Quiz.Mode)
	}
	return nil
}

// GameSettings converts the game section into simulation settings. The
// fixed difficulty disables speed-up even when step_ms is set.
func (c Config) GameSettings() snake.Settings {
	s := snake.DefaultSettings()
	s.TileCount = c.Game.TileCount
	s.Origin = snake.Point{X: c.Game.TileCount / 2, Y: c.Game.TileCount / 2}
	s.LockChance = c.Game.LockChance
	s.BaseInterval = time.Duration(c.Game.Speed.BaseMs) * time.Millisecond
	s.IntervalStep = time.Duration(c.Game.Speed.StepMs) * time.Millisecond
	s.MinInterval = time.Duration(c.Game.Speed.MinMs) * time.Millisecond
	s.PointsPerLevel = c.Game.PointsPerLevel
	s.ResolveDelay = time.Duration(c.Game.ResolveDelayMs) * time.Millisecond
	if IsFixedPreset(c.Game.Difficulty) {
		s.IntervalStep = 0
	}
	return s
}

// QuizTimeout is the per-request budget for quiz calls.
func (c Config) QuizTimeout() time.Duration {
	if c.Quiz.TimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Quiz.TimeoutMs) * time.Millisecond
}
