package config

import (
	_ "embed"
)

//go:embed defaults/sqlsnake.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when even the embedded
// YAML cannot be parsed.
func Default() Config {
	return Config{
		Game: GameConfig{
			TileCount:      20,
			LockChance:     0.3,
			PointsPerLevel: 5,
			ResolveDelayMs: 1500,
			Difficulty:     DifficultyNormal,
			Speed: SpeedConfig{
				BaseMs: 150,
				StepMs: 10,
				MinMs:  50,
			},
		},
		Quiz: QuizConfig{
			Mode:      QuizModeLocal,
			APIURL:    "http://localhost:5000",
			TimeoutMs: 5000,
		},
		Storage: StorageConfig{
			Path: "~/.sqlsnake/sqlsnake.db",
		},
		Server: ServerConfig{
			Addr:    ":5000",
			Metrics: true,
		},
		SSH: SSHConfig{
			HostKeyPath:    ".ssh/sqlsnake_ed25519",
			IdleTimeoutSec: 300,
			MaxTimeoutSec:  3600,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
