package core

// Color is a semantic foreground color for a screen cell.
// The TUI layer maps each value to an ANSI color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorSnakeHead
	ColorSnakeBody
	ColorFood
	ColorLockedFood
	ColorBorder
	ColorHUD
	ColorDim
)

// String returns the palette name of the color.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorSnakeHead:
		return "snake-head"
	case ColorSnakeBody:
		return "snake-body"
	case ColorFood:
		return "food"
	case ColorLockedFood:
		return "locked-food"
	case ColorBorder:
		return "border"
	case ColorHUD:
		return "hud"
	case ColorDim:
		return "dim"
	default:
		return "unknown"
	}
}
