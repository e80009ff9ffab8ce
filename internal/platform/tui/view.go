package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sql-snake/internal/core"
	"github.com/vovakirdan/sql-snake/internal/games/snake"
)

var (
	hudStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	modalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	difficultyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	feedbackStyles = map[snake.FeedbackKind]lipgloss.Style{
		snake.FeedbackNone:    lipgloss.NewStyle(),
		snake.FeedbackInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		snake.FeedbackSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		snake.FeedbackError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
)

// render composes HUD, board, modal, and help bar.
func (m Model) render() string {
	s := m.state

	m.screen.Clear()
	s.Render(m.screen, 0, 0)
	switch s.Phase {
	case snake.PhaseReady:
		m.drawOverlay("S Q L   S N A K E", "Eat to grow. Gray food asks SQL.", "Press SPACE to start")
	case snake.PhaseGameOver:
		m.drawOverlay("GAME OVER", fmt.Sprintf("Final score: %d", s.Score), "Press R to restart")
	}
	board := RenderScreen(m.screen)
	boardW, _ := snake.BoardSize(s.Settings)

	hud := hudStyle.Render(fmt.Sprintf("Score: %-4d Level: %-3d Best: %d", s.Score, s.Level, max(m.best, s.Score)))

	body := board
	if s.InChallenge() {
		modal := m.renderModal(boardW)
		if m.width == 0 || m.width >= boardW+lipgloss.Width(modal)+2 {
			body = lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", modal)
		} else {
			body = lipgloss.JoinVertical(lipgloss.Left, board, modal)
		}
	}

	bindings := m.keys.ShortHelp()
	if s.InChallenge() {
		bindings = m.keys.ModalHelp()
	}
	helpLine := helpStyle.Render(m.help.ShortHelpView(bindings))

	view := lipgloss.JoinVertical(lipgloss.Left, hud, body, helpLine)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

// drawOverlay writes centered text lines in the middle of the board.
func (m Model) drawOverlay(lines ...string) {
	h := m.screen.Height()
	top := (h - len(lines)*2) / 2
	for i, line := range lines {
		y := top + i*2
		x := (m.screen.Width() - len([]rune(line))) / 2
		m.screen.DrawTextColored(max(x, 1), y, line, core.ColorHUD)
	}
}

// renderModal draws the quiz box.
func (m Model) renderModal(width int) string {
	s := m.state
	inner := max(width-4, 20)

	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("SQL Challenge"))
	b.WriteString("\n\n")

	if s.Question != nil {
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(s.Question.Prompt))
		if s.Question.Difficulty != "" {
			b.WriteString("\n")
			b.WriteString(difficultyStyle.Render("difficulty: " + s.Question.Difficulty))
		}
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if s.Feedback.Text != "" {
		b.WriteString("\n")
		style := feedbackStyles[s.Feedback.Kind]
		b.WriteString(style.Width(inner).Render(s.Feedback.Text))
	}

	b.WriteString("\n\n")
	hints := []string{}
	for _, k := range []key.Binding{m.keys.Submit, m.keys.Skip} {
		hints = append(hints, k.Help().Key+" "+k.Help().Desc)
	}
	b.WriteString(helpStyle.Render(strings.Join(hints, " • ")))

	return modalStyle.Width(inner + 2).Render(b.String())
}
