package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sql-snake/internal/core"
	"github.com/vovakirdan/sql-snake/internal/games/snake"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		phase  snake.Phase
		expect core.Action
	}{
		{"space starts", tea.KeyMsg{Type: tea.KeySpace}, snake.PhaseReady, core.ActionStart},
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, snake.PhaseReady, core.ActionStart},
		{"arrow ignored before start", tea.KeyMsg{Type: tea.KeyUp}, snake.PhaseReady, core.ActionNone},
		{"w is up", runeKey("w"), snake.PhasePlaying, core.ActionUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, snake.PhasePlaying, core.ActionDown},
		{"h is left", runeKey("h"), snake.PhasePlaying, core.ActionLeft},
		{"d is right", runeKey("d"), snake.PhasePlaying, core.ActionRight},
		{"q quits while playing", runeKey("q"), snake.PhasePlaying, core.ActionQuit},
		{"r restarts", runeKey("r"), snake.PhaseGameOver, core.ActionRestart},
		{"enter restarts", tea.KeyMsg{Type: tea.KeyEnter}, snake.PhaseGameOver, core.ActionRestart},
		{"enter submits", tea.KeyMsg{Type: tea.KeyEnter}, snake.PhaseShowingQuestion, core.ActionSubmit},
		{"esc skips", tea.KeyMsg{Type: tea.KeyEsc}, snake.PhaseShowingQuestion, core.ActionSkip},
		{"esc skips while fetching", tea.KeyMsg{Type: tea.KeyEsc}, snake.PhaseAwaitingQuestion, core.ActionSkip},
		{"q is typed in the modal", runeKey("q"), snake.PhaseShowingQuestion, core.ActionNone},
		{"w is typed in the modal", runeKey("w"), snake.PhaseShowingQuestion, core.ActionNone},
		{"ctrl+c quits in the modal", tea.KeyMsg{Type: tea.KeyCtrlC}, snake.PhaseValidating, core.ActionQuit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg, tt.phase); got != tt.expect {
				t.Errorf("MapKey(%q, %v) = %v, expected %v", tt.msg.String(), tt.phase, got, tt.expect)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg    tea.KeyMsg
		expect MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.expect {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expect)
		}
	}
}

func TestDirectionFor(t *testing.T) {
	if d, ok := directionFor(core.ActionLeft); !ok || d != snake.DirLeft {
		t.Errorf("directionFor(Left) = %v, %v", d, ok)
	}
	if _, ok := directionFor(core.ActionSubmit); ok {
		t.Error("submit is not a direction")
	}
}
