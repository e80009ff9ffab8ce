package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sql-snake/internal/platform/tui"
)

var (
	flagLeaderboardTUI bool
	flagLimit          int
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show top players",
	Long: `Display the best players from the local database.

Examples:
  sqlsnake leaderboard
  sqlsnake leaderboard --limit 20
  sqlsnake leaderboard --tui`,
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().BoolVar(&flagLeaderboardTUI, "tui", false, "Browse the leaderboard interactively")
	leaderboardCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of players to show")
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := openStore(ctx, cfg.Storage.Path, log.Default())
	if err != nil {
		return err
	}
	defer store.Close()

	if flagLeaderboardTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunLeaderboard(store, width, height)
	}

	players, err := store.TopPlayers(ctx, flagLimit)
	if err != nil {
		return err
	}

	fmt.Println("Top Players - SQL Snake")
	fmt.Println()

	if len(players) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'sqlsnake play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-6s  %-8s  %-7s  %s\n", "Rank", "Player", "Best", "Answered", "Correct", "Last played")
	fmt.Printf("  %-4s  %-16s  %-6s  %-8s  %-7s  %s\n", "----", "------", "----", "--------", "-------", "-----------")

	for i, p := range players {
		fmt.Printf("  %-4d  %-16s  %-6d  %-8d  %-7d  %s\n",
			i+1, p.Username, p.HighScore, p.TotalQuestions, p.CorrectAnswers,
			p.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
