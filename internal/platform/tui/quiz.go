package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sql-snake/internal/quiz"
)

// errNoService is reported when the model runs without a question backend.
var errNoService = errors.New("tui: no quiz service configured")

// Messages produced by quiz commands. Each carries the epoch of the quiz
// session it was issued for.
type (
	questionMsg struct {
		epoch    uint64
		question quiz.Question
		err      error
	}

	verdictMsg struct {
		epoch   uint64
		verdict quiz.Verdict
		err     error
	}

	resolveMsg struct {
		epoch uint64
	}

	statsMsg struct {
		stats quiz.Stats
		err   error
	}
)

func fetchQuestionCmd(svc quiz.Service, timeout time.Duration, epoch uint64) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return questionMsg{epoch: epoch, err: errNoService}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		q, err := svc.RandomQuestion(ctx)
		return questionMsg{epoch: epoch, question: q, err: err}
	}
}

func validateCmd(svc quiz.Service, timeout time.Duration, epoch uint64, query string, questionID int64) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return verdictMsg{epoch: epoch, err: errNoService}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		v, err := svc.Validate(ctx, query, questionID)
		return verdictMsg{epoch: epoch, verdict: v, err: err}
	}
}

// resolveCmd fires once the success feedback has been on screen long enough.
func resolveCmd(epoch uint64, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return resolveMsg{epoch: epoch}
	})
}

// reportStatsCmd sends round statistics. The result is only logged.
func reportStatsCmd(svc quiz.Service, timeout time.Duration, stats quiz.Stats) tea.Cmd {
	return func() tea.Msg {
		if svc == nil {
			return statsMsg{stats: stats, err: errNoService}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return statsMsg{stats: stats, err: svc.UpdateStats(ctx, stats)}
	}
}
