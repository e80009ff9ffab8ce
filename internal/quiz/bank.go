package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/vovakirdan/sql-snake/internal/storage"
)

// Bank serves questions straight from the local database. It backs
// offline play and the HTTP server.
type Bank struct {
	store *storage.Store
}

// NewBank wraps an open store.
func NewBank(store *storage.Store) *Bank {
	return &Bank{store: store}
}

// RandomQuestion picks a question uniformly from the bank.
func (b *Bank) RandomQuestion(ctx context.Context) (Question, error) {
	q, err := b.store.RandomQuestion(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return Question{}, ErrNoQuestion
	}
	if err != nil {
		return Question{}, err
	}
	return Question{ID: q.ID, Prompt: q.Prompt, Difficulty: q.Difficulty}, nil
}

// Validate compares the query against the stored reference answer.
func (b *Bank) Validate(ctx context.Context, query string, questionID int64) (Verdict, error) {
	if strings.TrimSpace(query) == "" || questionID == 0 {
		return Verdict{}, ErrMissingInput
	}
	q, err := b.store.QuestionByID(ctx, questionID)
	if errors.Is(err, storage.ErrNotFound) {
		return Verdict{}, ErrUnknownQuestion
	}
	if err != nil {
		return Verdict{}, err
	}
	return Verdict{
		Valid:    QueriesMatch(query, q.ExpectedQuery),
		Expected: q.ExpectedQuery,
	}, nil
}

// UpdateStats records a finished round.
func (b *Bank) UpdateStats(ctx context.Context, stats Stats) error {
	return b.store.UpdateStats(ctx, storage.StatsReport{
		Username:          stats.Username,
		Score:             stats.Score,
		QuestionsAnswered: stats.QuestionsAnswered,
		CorrectAnswers:    stats.CorrectAnswers,
	})
}
