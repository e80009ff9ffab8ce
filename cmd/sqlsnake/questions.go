package main

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sql-snake/internal/storage"
)

var (
	flagQuestion      string
	flagExpected      string
	flagQuestionLevel string
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage the question bank",
	Long: `List, add, or import the SQL questions served to players.

A fresh database is seeded with the built-in questions.

Import files are YAML lists:

  - question: Select all columns from the employees table
    expected_query: SELECT * FROM employees;
    difficulty: easy

Examples:
  sqlsnake questions list
  sqlsnake questions add --question "Count employees" --expected "SELECT COUNT(*) FROM employees;"
  sqlsnake questions import ./questions.yaml`,
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all questions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd, func(ctx context.Context, store *storage.Store) error {
			questions, err := store.ListQuestions(ctx)
			if err != nil {
				return err
			}
			if len(questions) == 0 {
				fmt.Println("No questions in the bank.")
				return nil
			}

			fmt.Printf("  %-4s  %-8s  %s\n", "ID", "Level", "Question")
			fmt.Printf("  %-4s  %-8s  %s\n", "--", "-----", "--------")
			for _, q := range questions {
				fmt.Printf("  %-4d  %-8s  %s\n", q.ID, q.Difficulty, q.Prompt)
				fmt.Printf("  %-4s  %-8s  -> %s\n", "", "", q.ExpectedQuery)
			}
			return nil
		})
	},
}

var questionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add one question",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withStore(cmd, func(ctx context.Context, store *storage.Store) error {
			id, err := store.AddQuestion(ctx, storage.QuestionSeed{
				Question:      flagQuestion,
				ExpectedQuery: flagExpected,
				Difficulty:    flagQuestionLevel,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Added question #%d\n", id)
			return nil
		})
	},
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import questions from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seeds, err := storage.LoadQuestionFile(args[0])
		if err != nil {
			return err
		}
		return withStore(cmd, func(ctx context.Context, store *storage.Store) error {
			n, err := store.AddQuestions(ctx, seeds)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d questions from %s\n", n, args[0])
			return nil
		})
	},
}

func init() {
	questionsAddCmd.Flags().StringVar(&flagQuestion, "question", "", "Question text")
	questionsAddCmd.Flags().StringVar(&flagExpected, "expected", "", "Reference SQL answer")
	questionsAddCmd.Flags().StringVar(&flagQuestionLevel, "difficulty", "", "Difficulty label")
	questionsAddCmd.MarkFlagRequired("question")
	questionsAddCmd.MarkFlagRequired("expected")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsAddCmd)
	questionsCmd.AddCommand(questionsImportCmd)
}

// withStore opens the configured database for a short command.
func withStore(cmd *cobra.Command, fn func(context.Context, *storage.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := openStore(ctx, cfg.Storage.Path, log.New(io.Discard))
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(ctx, store)
}
