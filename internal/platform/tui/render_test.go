package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sql-snake/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.SetColored(0, 0, '@', core.ColorSnakeHead)
	s.SetColored(1, 0, 'o', core.ColorSnakeBody)
	s.SetColored(3, 1, '*', core.ColorFood)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, expected 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 4 {
			t.Errorf("line %d width = %d, expected 4", i, w)
		}
	}
	if !strings.Contains(out, "@") || !strings.Contains(out, "*") {
		t.Errorf("missing cells in %q", out)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q", got)
	}
	if got := centerText("too wide", 3); got != "too wide" {
		t.Errorf("centerText should not trim, got %q", got)
	}
	styled := hudStyle.Render("ab")
	if got := centerText(styled, 6); !strings.HasPrefix(got, "  ") || lipgloss.Width(got) != 4 {
		t.Errorf("styled text centered as %q", got)
	}
}
