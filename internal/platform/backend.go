package platform

import "slices"

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Screen describes the managed screen. Geometry is read once at connect time.
type Screen struct {
	Index  int
	Width  int
	Height int
}

// Chord is a grabbed key combination. Mods never contains lock-style
// modifiers; backends strip those from key events before delivery.
type Chord struct {
	Keys     string
	Mods     uint16
	Keycodes []uint8
}

// Matches reports whether a key event with the given modifier state and
// keycode is exactly this chord.
func (c Chord) Matches(mods uint16, keycode uint8) bool {
	return mods == c.Mods && slices.Contains(c.Keycodes, keycode)
}

// Event is a notification delivered by the display server.
type Event interface {
	isEvent()
}

// MapRequest is sent when a top-level window asks to become visible.
type MapRequest struct {
	Window WindowID
}

// DestroyNotify is sent when a window under the root has been destroyed.
type DestroyNotify struct {
	Window WindowID
}

// KeyPress is sent for a grabbed key. Mods has lock modifiers removed.
type KeyPress struct {
	Mods    uint16
	Keycode uint8
}

// ProtocolError carries an asynchronous error reply for an earlier request,
// e.g. configuring a window that was destroyed in the meantime.
type ProtocolError struct {
	Err error
}

// Unhandled is any other notification. Kind is for diagnostics only.
type Unhandled struct {
	Kind string
}

func (MapRequest) isEvent()    {}
func (DestroyNotify) isEvent() {}
func (KeyPress) isEvent()      {}
func (ProtocolError) isEvent() {}
func (Unhandled) isEvent()     {}

// Backend abstracts the display-server operations the window manager uses.
//
// Map and MoveResize may be pipelined; Flush must not return until every
// earlier command has reached the server. NextEvent blocks indefinitely.
type Backend interface {
	Screen() Screen
	Subscribe() error
	GrabKey(keys string) (Chord, error)
	Map(windowID WindowID) error
	MoveResize(windowID WindowID, bounds Rect) error
	Flush() error
	NextEvent() (Event, error)
}
