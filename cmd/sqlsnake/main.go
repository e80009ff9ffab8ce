// sqlsnake is a terminal Snake game where some food is locked behind an SQL
// question.
//
// Usage:
//
//	sqlsnake play                 - Play in the terminal
//	sqlsnake serve                - Start the quiz API (and optionally the SSH arcade)
//	sqlsnake leaderboard          - Show top players
//	sqlsnake questions list       - Manage the question bank
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.sqlsnake/config.yaml)
//	--db <path>         - Database path (default: ~/.sqlsnake/sqlsnake.db)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--log-level <lvl>   - debug, info, warn, error
//	--log-file <path>   - Write logs to a file
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sql-snake/internal/config"
	"github.com/vovakirdan/sql-snake/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sqlsnake",
	Short: "SQL Snake - Snake with SQL quizzes in your terminal",
	Long: `SQL Snake is the classic Snake game with a twist: some food is locked,
and eating it means answering an SQL question first.

Available commands:
  play         - Play a round in this terminal
  serve        - Start the quiz HTTP API and the SSH arcade
  leaderboard  - View top players
  questions    - List, add, or import quiz questions

Examples:
  sqlsnake play
  sqlsnake play --difficulty hard
  sqlsnake play --api http://localhost:5000
  sqlsnake serve --ssh :23234
  sqlsnake leaderboard --tui`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(questionsCmd)
}

// loadConfig reads the config file and applies global flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}
	return cfg, nil
}

// applyDifficulty resolves a preset name, falling back to the configured one.
func applyDifficulty(cfg *config.Config, name string) error {
	if name == "" {
		name = string(cfg.Game.Difficulty)
	}
	preset, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	config.ApplyPreset(cfg, preset)
	return cfg.Validate()
}

// newLogger builds the process logger. Without a log file, output goes to
// fallback.
func newLogger(cfg config.LogConfig, fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		logger.SetLevel(level)
	}
	return logger, closeFn, nil
}

// openStore opens the database and seeds the default questions into an
// empty bank.
func openStore(ctx context.Context, path string, logger *log.Logger) (*storage.Store, error) {
	store, err := storage.Open(path)
	if err != nil {
		return nil, err
	}

	seeds, err := storage.DefaultQuestions()
	if err != nil {
		store.Close()
		return nil, err
	}
	n, err := store.SeedQuestions(ctx, seeds)
	if err != nil {
		store.Close()
		return nil, err
	}
	if n > 0 {
		logger.Info("seeded question bank", "questions", n)
	}
	return store, nil
}
