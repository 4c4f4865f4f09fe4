//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/splitwm/internal/x11"
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay opens a fresh X11 connection. An empty display
// means $DISPLAY.
func NewLinuxBackendFromDisplay(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection. It unblocks a pending
// NextEvent and may be called from another goroutine.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// Screen returns the default screen's geometry.
func (b *LinuxBackend) Screen() Screen {
	width, height := b.conn.ScreenSize()
	return Screen{
		Index:  b.conn.Screen,
		Width:  width,
		Height: height,
	}
}

// Subscribe makes this process the window manager of the root window.
func (b *LinuxBackend) Subscribe() error {
	return b.conn.BecomeWM()
}

// GrabKey grabs a key sequence on the root window.
func (b *LinuxBackend) GrabKey(keys string) (Chord, error) {
	mods, keycodes, err := b.conn.GrabKey(keys)
	if err != nil {
		return Chord{}, err
	}
	chord := Chord{
		Keys:     keys,
		Mods:     x11.KeyState(mods),
		Keycodes: make([]uint8, 0, len(keycodes)),
	}
	for _, kc := range keycodes {
		chord.Keycodes = append(chord.Keycodes, uint8(kc))
	}
	return chord, nil
}

// Map shows a window.
func (b *LinuxBackend) Map(windowID WindowID) error {
	return b.conn.MapWindow(xproto.Window(windowID))
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	return b.conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

// Flush waits for the server to process every command issued so far.
func (b *LinuxBackend) Flush() error {
	return b.conn.Sync()
}

// NextEvent blocks for the next X event and translates it.
func (b *LinuxBackend) NextEvent() (Event, error) {
	ev, xerr, err := b.conn.WaitForEvent()
	if err != nil {
		return nil, err
	}
	if xerr != nil {
		return ProtocolError{Err: xerr}, nil
	}
	return translateEvent(ev), nil
}

func translateEvent(ev xgb.Event) Event {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		return MapRequest{Window: WindowID(e.Window)}
	case xproto.DestroyNotifyEvent:
		return DestroyNotify{Window: WindowID(e.Window)}
	case xproto.KeyPressEvent:
		return KeyPress{Mods: x11.KeyState(e.State), Keycode: uint8(e.Detail)}
	default:
		return Unhandled{Kind: fmt.Sprintf("%T", ev)}
	}
}
