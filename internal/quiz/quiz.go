// Package quiz provides the question service the game consults when the
// snake eats locked food: an HTTP client for a remote quiz API and an
// in-process bank backed by SQLite.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNoQuestion means the bank has no question to hand out.
	ErrNoQuestion = errors.New("quiz: no questions available")
	// ErrUnknownQuestion means a validation referenced a missing question.
	ErrUnknownQuestion = errors.New("quiz: question not found")
	// ErrMissingInput means a validation request lacked the query or ID.
	ErrMissingInput = errors.New("quiz: missing query or question ID")
)

// Question is a prompt shown to the player. The reference answer never
// leaves the service until a submission is checked.
type Question struct {
	ID         int64  `json:"id"`
	Prompt     string `json:"question"`
	Difficulty string `json:"difficulty,omitempty"`
}

// Verdict is the result of checking a submitted query.
type Verdict struct {
	Valid    bool
	Expected string
}

// Stats is reported once per finished round.
type Stats struct {
	Username          string `json:"username"`
	Score             int    `json:"score"`
	QuestionsAnswered int    `json:"questions_answered"`
	CorrectAnswers    int    `json:"correct_answers"`
}

// Service is the question backend used by the game.
type Service interface {
	RandomQuestion(ctx context.Context) (Question, error)
	Validate(ctx context.Context, query string, questionID int64) (Verdict, error)
	UpdateStats(ctx context.Context, stats Stats) error
}

// APIError is a non-success answer from the quiz API.
type APIError struct {
	Op     string
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("quiz: %s: %d %s", e.Op, e.Status, e.Msg)
}

// Wire payloads shared by Client and the HTTP server.
type (
	ValidateRequest struct {
		Query      string `json:"query"`
		QuestionID int64  `json:"question_id"`
	}

	ValidateResponse struct {
		Valid    bool   `json:"valid"`
		Expected string `json:"expected,omitempty"`
		Error    string `json:"error,omitempty"`
	}

	QuestionResponse struct {
		Question
		Error string `json:"error,omitempty"`
	}

	StatusResponse struct {
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
	}
)

var whitespace = regexp.MustCompile(`\s+`)

// NormalizeQuery collapses whitespace runs, lowercases, and drops trailing
// semicolons.
func NormalizeQuery(q string) string {
	q = strings.ToLower(whitespace.ReplaceAllString(strings.TrimSpace(q), " "))
	return strings.TrimSpace(strings.TrimRight(q, ";"))
}

// QueriesMatch reports whether two queries are equal after normalization.
func QueriesMatch(submitted, expected string) bool {
	return NormalizeQuery(submitted) == NormalizeQuery(expected)
}
