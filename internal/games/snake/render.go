package snake

import "github.com/vovakirdan/sql-snake/internal/core"

// cellWidth is the number of terminal columns per grid cell. Terminal cells
// are roughly twice as tall as wide, so two columns keep the board square.
const cellWidth = 2

// BoardSize returns the size in terminal cells of a rendered board,
// border included.
func BoardSize(settings Settings) (w, h int) {
	n := settings.normalized().TileCount
	return n*cellWidth + 2, n + 2
}

// Render draws the board with its top-left border corner at (x, y).
func (s State) Render(dst *core.Screen, x, y int) {
	w, h := BoardSize(s.Settings)
	dst.DrawBox(core.NewRect(x, y, w, h), core.ColorBorder)

	drawCell := func(p Point, r rune, c core.Color) {
		sx := x + 1 + p.X*cellWidth
		sy := y + 1 + p.Y
		for i := range cellWidth {
			dst.SetColored(sx+i, sy, r, c)
		}
	}

	if s.HasFood() {
		if s.Locked {
			drawCell(s.Food, '▒', core.ColorLockedFood)
		} else {
			drawCell(s.Food, '█', core.ColorFood)
		}
	}

	// Body first so the head wins when it sits on the food cell.
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			drawCell(s.Snake[i], '█', core.ColorSnakeHead)
		} else {
			drawCell(s.Snake[i], '█', core.ColorSnakeBody)
		}
	}
}
