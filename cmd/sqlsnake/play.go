package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sql-snake/internal/config"
	"github.com/vovakirdan/sql-snake/internal/core"
	"github.com/vovakirdan/sql-snake/internal/platform/tui"
	"github.com/vovakirdan/sql-snake/internal/quiz"
	"github.com/vovakirdan/sql-snake/internal/storage"
)

var (
	flagOffline    bool
	flagAPIURL     string
	flagUser       string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play SQL Snake",
	Long: `Start a round of SQL Snake in this terminal.

Gray food is locked: eating it opens an SQL question. Answer correctly to
eat it, or press Esc to skip it and get new food elsewhere.

Controls:
  Arrows/WASD  - Steer
  Space        - Start
  Enter        - Submit query
  Esc          - Skip question
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower snake, fewer locked foods
  normal - Configured values
  hard   - Faster snake, half the food locked
  fixed  - No speed-up between levels

Examples:
  sqlsnake play
  sqlsnake play --difficulty hard
  sqlsnake play --api http://localhost:5000 --user alice
  sqlsnake play --offline --db ./quiz.db`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagOffline, "offline", false, "Use the local question bank")
	playCmd.Flags().StringVar(&flagAPIURL, "api", "", "Quiz API base URL (switches to remote mode)")
	playCmd.Flags().StringVar(&flagUser, "user", "", "Player name for stats")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagAPIURL != "" {
		cfg.Quiz.Mode = config.QuizModeRemote
		cfg.Quiz.APIURL = flagAPIURL
	}
	if flagOffline {
		cfg.Quiz.Mode = config.QuizModeLocal
	}
	if flagUser != "" {
		cfg.Quiz.Username = flagUser
	}
	if err := applyDifficulty(&cfg, flagDifficulty); err != nil {
		return err
	}

	// Logs never go to the terminal the game draws on
	logger, closeLog, err := newLogger(cfg.Log, io.Discard, "sqlsnake")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		svc   quiz.Service
		store *storage.Store
	)
	if cfg.Remote() {
		svc = quiz.NewClient(cfg.Quiz.APIURL, nil)
		logger.Info("using remote quiz API", "url", cfg.Quiz.APIURL)
	} else {
		store, err = openStore(ctx, cfg.Storage.Path, logger)
		if err != nil {
			return fmt.Errorf("cannot open question bank: %w", err)
		}
		defer store.Close()
		svc = quiz.NewBank(store)
	}

	username := cfg.Quiz.Username
	if username == "" {
		username = os.Getenv("USER")
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return tui.Run(ctx, tui.Options{
		Settings: cfg.GameSettings(),
		Service:  svc,
		Store:    store,
		Username: username,
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		Timeout: cfg.QuizTimeout(),
		Logger:  logger,
	})
}
