package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sql-snake/internal/core"
	"github.com/vovakirdan/sql-snake/internal/games/snake"
)

// KeyMap defines the key bindings for the game screen.
// This centralizes key bindings and makes them testable.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Start     key.Binding
	Submit    key.Binding
	Skip      key.Binding
	Restart   key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Start, k.Submit, k.Skip, k.Restart},
		{k.Quit, k.ForceQuit},
	}
}

// ModalHelp returns the bindings that work while a question is open.
func (k KeyMap) ModalHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Skip, k.ForceQuit}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Start: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Skip: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "skip question"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// MapKey translates a key message to an action for the given phase.
// Inside the quiz modal only submit, skip, and ctrl+c are actions; every
// other key belongs to the query input and maps to ActionNone.
func (k KeyMap) MapKey(msg tea.KeyMsg, phase snake.Phase) core.Action {
	if key.Matches(msg, k.ForceQuit) {
		return core.ActionQuit
	}

	switch phase {
	case snake.PhaseAwaitingQuestion, snake.PhaseShowingQuestion, snake.PhaseValidating, snake.PhaseResolved:
		switch {
		case key.Matches(msg, k.Submit):
			return core.ActionSubmit
		case key.Matches(msg, k.Skip):
			return core.ActionSkip
		}
		return core.ActionNone
	}

	if key.Matches(msg, k.Quit) {
		return core.ActionQuit
	}

	switch phase {
	case snake.PhaseReady:
		if key.Matches(msg, k.Start) {
			return core.ActionStart
		}
	case snake.PhaseGameOver:
		if key.Matches(msg, k.Restart) {
			return core.ActionRestart
		}
	case snake.PhasePlaying:
		switch {
		case key.Matches(msg, k.Up):
			return core.ActionUp
		case key.Matches(msg, k.Down):
			return core.ActionDown
		case key.Matches(msg, k.Left):
			return core.ActionLeft
		case key.Matches(msg, k.Right):
			return core.ActionRight
		}
	}
	return core.ActionNone
}

// directionFor maps a directional action to a heading.
func directionFor(a core.Action) (snake.Direction, bool) {
	switch a {
	case core.ActionUp:
		return snake.DirUp, true
	case core.ActionDown:
		return snake.DirDown, true
	case core.ActionLeft:
		return snake.DirLeft, true
	case core.ActionRight:
		return snake.DirRight, true
	}
	return 0, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
