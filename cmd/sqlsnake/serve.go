package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/sql-snake/internal/platform/tui"
	"github.com/vovakirdan/sql-snake/internal/quiz"
	"github.com/vovakirdan/sql-snake/internal/server"
)

var (
	flagHTTPAddr string
	flagSSHAddr  string
	flagHostKey  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the quiz API server",
	Long: `Start the HTTP quiz API backed by the local question bank.

With --ssh (or ssh.addr in the config), the same process also runs an SSH
arcade: every connection gets its own game, and stats go to the shared
leaderboard under the SSH user name.

Endpoints:
  GET  /api/question/random
  POST /api/validate
  POST /api/stats
  GET  /healthz
  GET  /metrics

Examples:
  sqlsnake serve                       # HTTP on :5000
  sqlsnake serve --addr :8080
  sqlsnake serve --ssh :23234          # Also serve the SSH arcade
  sqlsnake serve --db ./sqlsnake.db

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "HTTP listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH arcade address (host:port); empty disables it")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to SSH host key file")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for SSH games")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagHTTPAddr != "" {
		cfg.Server.Addr = flagHTTPAddr
	}
	if flagSSHAddr != "" {
		cfg.SSH.Addr = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKeyPath = flagHostKey
	}
	if err := applyDifficulty(&cfg, flagDifficulty); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log, os.Stderr, "sqlsnake")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Storage.Path, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	bank := quiz.NewBank(store)

	reg := prometheus.NewRegistry()
	if cfg.Server.Metrics {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	handler := server.New(bank, logger.WithPrefix("http"), reg)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx, cfg.Server.Addr, handler, logger.WithPrefix("http"))
	})

	if cfg.SSH.Addr != "" {
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     cfg.SSH.Addr,
			HostKeyPath: cfg.SSH.HostKeyPath,
			IdleTimeout: time.Duration(cfg.SSH.IdleTimeoutSec) * time.Second,
			MaxTimeout:  time.Duration(cfg.SSH.MaxTimeoutSec) * time.Second,
			Settings:    cfg.GameSettings(),
			Service:     bank,
			Store:       store,
			Timeout:     cfg.QuizTimeout(),
			Logger:      logger.WithPrefix("ssh"),
		})
		if err != nil {
			return err
		}
		g.Go(func() error {
			return sshServer.ListenAndServe(ctx)
		})
	}

	return g.Wait()
}
