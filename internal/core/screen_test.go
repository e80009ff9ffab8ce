package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("dimensions = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Errorf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '█', ColorLockedFood)
	c := s.GetCell(3, 4)
	if c.Rune != '█' || c.Color != ColorLockedFood {
		t.Errorf("GetCell(3, 4) = %+v, expected locked food block", c)
	}

	// Out of bounds writes are ignored and reads are blank
	s.SetColored(-1, 0, 'A', ColorFood)
	s.SetColored(0, 10, 'A', ColorFood)
	if s.Get(-1, 0) != ' ' || s.GetCell(0, 10) != blank {
		t.Error("out of bounds access should be blank")
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColored(0, 0, "abcd", ColorHUD)
	s.Clear()

	for x := 0; x < 4; x++ {
		if s.GetCell(x, 0) != blank {
			t.Errorf("after Clear cell %d = %+v", x, s.GetCell(x, 0))
		}
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(3, 0, "Score")

	if got := s.Row(0); got != "   Sco" {
		t.Errorf("Row(0) = %q, expected clipped text", got)
	}
}

func TestScreenDrawTextCenteredCountsRunes(t *testing.T) {
	s := NewScreen(9, 1)
	s.DrawTextCentered(0, "─x─")

	if got := s.Row(0); got != "   ─x─   " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorBorder)

	expected := strings.Join([]string{
		"┌────┐",
		"│    │",
		"│    │",
		"└────┘",
	}, "\n")
	if got := s.String(); got != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", got, expected)
	}
	if s.GetCell(0, 0).Color != ColorBorder {
		t.Error("box corners should carry the border color")
	}
}

func TestScreenFillRect(t *testing.T) {
	s := NewScreen(5, 5)
	s.FillRect(NewRect(1, 1, 2, 2), Cell{Rune: '#', Color: ColorDim})

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			inside := x >= 1 && x < 3 && y >= 1 && y < 3
			if (s.Get(x, y) == '#') != inside {
				t.Errorf("cell (%d, %d) = %q, inside=%v", x, y, s.Get(x, y), inside)
			}
		}
	}
}

func TestScreenResizeDiscardsContent(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 2)
	if s.Width() != 8 || s.Height() != 2 {
		t.Fatalf("after Resize dimensions = %dx%d", s.Width(), s.Height())
	}
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("resized screen should be blank, got %q", s.String())
	}

	// Negative sizes collapse to an empty buffer instead of panicking
	s.Resize(-1, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("negative resize = %dx%d", s.Width(), s.Height())
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(4, 1)
	if got := s.Row(3); got != "    " {
		t.Errorf("Row(3) = %q, expected spaces", got)
	}
}
