package tiling

import (
	"fmt"

	"github.com/1broseidon/splitwm/internal/platform"
)

// Rect represents a window position and size
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Mode defines how the two tiled windows split the screen.
type Mode int

const (
	Horizontal Mode = iota // Side by side.
	Vertical               // Stacked top and bottom.
)

func (m Mode) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Assignment is the geometry computed for one window.
type Assignment struct {
	Window platform.WindowID
	Bounds Rect
}

// Compute arranges windows on a screen of the given size.
//
// Nothing is arranged until a second window exists: fewer than two windows
// yields no assignments. With two, the screen is split in half along the
// mode's axis and the second window absorbs any odd pixel.
func Compute(screen Rect, windows []platform.WindowID, mode Mode) []Assignment {
	if len(windows) < MaxTiled {
		return nil
	}

	width := max(screen.Width, 0)
	height := max(screen.Height, 0)

	var first, second Rect
	switch mode {
	case Vertical:
		half := height / 2
		first = Rect{X: 0, Y: 0, Width: width, Height: half}
		second = Rect{X: 0, Y: half, Width: width, Height: height - half}
	default:
		half := width / 2
		first = Rect{X: 0, Y: 0, Width: half, Height: height}
		second = Rect{X: half, Y: 0, Width: width - half, Height: height}
	}

	return []Assignment{
		{Window: windows[0], Bounds: first},
		{Window: windows[1], Bounds: second},
	}
}
