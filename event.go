package animator

import "github.com/hajimehoshi/ebiten/v2"

// MouseButton identifies which pointer button produced a click.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "Left"
	case MouseButtonRight:
		return "Right"
	case MouseButtonMiddle:
		return "Middle"
	default:
		return "Unknown"
	}
}

// Modifiers holds the keyboard modifier state at click time.
type Modifiers struct {
	Shift   bool
	Control bool
	Alt     bool
}

// ClickEvent is the pointer-press data forwarded to the click callback.
// X and Y are pixel coordinates local to the canvas region.
type ClickEvent struct {
	X         int
	Y         int
	Button    MouseButton
	Modifiers Modifiers
}

func currentModifiers() Modifiers {
	return Modifiers{
		Shift:   ebiten.IsKeyPressed(ebiten.KeyShift),
		Control: ebiten.IsKeyPressed(ebiten.KeyControl),
		Alt:     ebiten.IsKeyPressed(ebiten.KeyAlt),
	}
}
