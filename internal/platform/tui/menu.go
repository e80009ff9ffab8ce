package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// MenuChoice is an entry of the session menu.
type MenuChoice int

const (
	MenuPlay MenuChoice = iota
	MenuLeaderboard
	MenuQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice MenuChoice
	Title  string
}

// MenuModel is the Bubble Tea model for the session menu shown to SSH
// players between rounds.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	username string
	best     int
	quitting bool
	selected *MenuItem // Set when user selects an entry
}

// NewMenuModel creates a new menu model.
func NewMenuModel(username string, best, width, height int) MenuModel {
	return MenuModel{
		items: []MenuItem{
			{Choice: MenuPlay, Title: "Play"},
			{Choice: MenuLeaderboard, Title: "Leaderboard"},
			{Choice: MenuQuit, Title: "Quit"},
		},
		width:    width,
		height:   height,
		username: username,
		best:     best,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, nil

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		selected := m.items[m.cursor]
		if selected.Choice == MenuQuit {
			m.quitting = true
			return m, nil
		}
		m.selected = &selected
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(hudStyle.Render("  S Q L   S N A K E  "), m.width))
	b.WriteString("\n\n")

	subtitle := fmt.Sprintf("Welcome, %s", m.username)
	if m.best > 0 {
		subtitle += fmt.Sprintf("  (best: %d)", m.best)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.Title, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Up/Down: Navigate  |  Enter: Select  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
