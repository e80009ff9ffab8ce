package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Speed never changes with level
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", name)
	}
}

// IsFixedPreset returns true if the preset disables speed progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset adjusts the game section for a difficulty preset. Normal
// keeps the configured values.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Game.Difficulty = preset

	switch preset {
	case DifficultyEasy:
		cfg.Game.LockChance = 0.2
		cfg.Game.Speed.BaseMs = 180
		cfg.Game.Speed.MinMs = 80
	case DifficultyHard:
		cfg.Game.LockChance = 0.5
		cfg.Game.Speed.BaseMs = 120
		cfg.Game.Speed.StepMs = 12
		cfg.Game.Speed.MinMs = 40
	case DifficultyFixed:
		cfg.Game.Speed.StepMs = 0
	}
}
