package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sql-snake/internal/storage"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSessionFlow(t *testing.T) {
	m := NewSessionModel(testOptions(newFakeQuiz()))
	if m.screen != screenMenu || !strings.Contains(m.View(), "Welcome, tester") {
		t.Fatalf("session should open on the menu, got %q", m.View())
	}

	// Play
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected game", m.screen)
	}
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.game.State().Running {
		t.Error("game should start inside the session")
	}

	// Quitting the game returns to the menu
	m, _ = updateSession(t, m, runeKey("q"))
	if m.screen != screenMenu || m.quitting {
		t.Fatalf("screen = %v quitting = %v, expected menu", m.screen, m.quitting)
	}

	// Leaderboard and back
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenLeaderboard {
		t.Fatalf("screen = %v, expected leaderboard", m.screen)
	}
	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu || m.quitting {
		t.Fatalf("esc should go back to the menu, screen = %v", m.screen)
	}
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("going back must not end the session")
		}
	}

	m, cmd = updateSession(t, m, runeKey("q"))
	if !m.quitting {
		t.Fatal("q on the menu should end the session")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
}

func TestLeaderboardRankings(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "lb.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	reports := []storage.StatsReport{
		{Username: "alice", Score: 9, QuestionsAnswered: 4, CorrectAnswers: 3},
		{Username: "bob", Score: 14, QuestionsAnswered: 2, CorrectAnswers: 2},
		{Username: "alice", Score: 5, QuestionsAnswered: 1, CorrectAnswers: 0},
	}
	for _, r := range reports {
		if err := store.UpdateStats(ctx, r); err != nil {
			t.Fatalf("UpdateStats() error = %v", err)
		}
	}

	m := NewLeaderboardModel(store, 100, 30)
	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d player rows, expected 2", len(rows))
	}
	if rows[0][1] != "bob" || rows[1][1] != "alice" {
		t.Errorf("players ordered %s, %s", rows[0][1], rows[1][1])
	}
	if rows[1][5] != "60%" {
		t.Errorf("alice accuracy = %s, expected 60%%", rows[1][5])
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(LeaderboardModel)
	if m.view != viewRounds || len(m.table.Rows()) != 3 {
		t.Errorf("rounds view has %d rows", len(m.table.Rows()))
	}
	if !strings.Contains(m.View(), "BEST ROUNDS") {
		t.Error("rounds title missing")
	}
}

func TestLeaderboardWithoutStore(t *testing.T) {
	m := NewLeaderboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No rounds recorded yet") {
		t.Error("empty leaderboard message missing")
	}
}
