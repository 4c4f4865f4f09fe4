package x11

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

var (
	// ErrAnotherWM is returned by BecomeWM when SubstructureRedirect on the
	// root window is already held.
	ErrAnotherWM = errors.New("another window manager is already running")
	// ErrConnectionClosed is returned by WaitForEvent once the X connection
	// has gone away.
	ErrConnectionClosed = errors.New("x11 connection closed")
)

// Connection manages the X11 connection and core X resources.
//
// Requests are serialized with Close: once the connection is closed, by
// Close or by xgb itself after a read error, every request method returns
// ErrConnectionClosed instead of touching the xgb request queue. The zero
// value is a connection that is already closed.
type Connection struct {
	XUtil  *xgbutil.XUtil
	Root   xproto.Window
	Screen int

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func newConnection(xu *xgbutil.XUtil) *Connection {
	c := &Connection{XUtil: xu, done: make(chan struct{})}
	if xu != nil {
		c.Root = xu.RootWin()
		c.Screen = xu.Conn().DefaultScreen
	}
	return c
}

// NewConnection establishes a connection to the X11 server. An empty display
// means $DISPLAY.
func NewConnection(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}

	// Initialize keybind module (required for key grabs and keysym lookup)
	keybind.Initialize(xu)
	configureIgnoreMods(xu)

	return newConnection(xu), nil
}

// ScreenSize returns the default screen's size in pixels.
func (c *Connection) ScreenSize() (width, height int) {
	s := c.XUtil.Screen()
	return int(s.WidthInPixels), int(s.HeightInPixels)
}

// BecomeWM selects SubstructureRedirect and SubstructureNotify on the root
// window, so map requests are redirected to us and destroys are reported.
func (c *Connection) BecomeWM() error {
	var cookie xproto.ChangeWindowAttributesCookie
	if err := c.request(func() {
		cookie = xproto.ChangeWindowAttributesChecked(
			c.XUtil.Conn(),
			c.Root,
			xproto.CwEventMask,
			[]uint32{
				xproto.EventMaskSubstructureRedirect |
					xproto.EventMaskSubstructureNotify,
			},
		)
	}); err != nil {
		return err
	}
	if err := cookie.Check(); err != nil {
		var access xproto.AccessError
		if errors.As(err, &access) {
			return ErrAnotherWM
		}
		return fmt.Errorf("failed to select root window events: %w", err)
	}
	return nil
}

// Sync blocks until the server has processed every request sent so far.
// It returns ErrConnectionClosed if the connection is closed while waiting.
func (c *Connection) Sync() error {
	var cookie xproto.GetInputFocusCookie
	if err := c.request(func() {
		cookie = xproto.GetInputFocus(c.XUtil.Conn())
	}); err != nil {
		return err
	}

	replied := make(chan error, 1)
	go func() {
		_, err := cookie.Reply()
		replied <- err
	}()
	select {
	case err := <-replied:
		if err != nil {
			return fmt.Errorf("sync with X server: %w", err)
		}
		return nil
	case <-c.done:
		return ErrConnectionClosed
	}
}

// WaitForEvent blocks for the next event. Protocol errors are returned as
// xerr with a nil event; a closed connection yields ErrConnectionClosed.
func (c *Connection) WaitForEvent() (ev xgb.Event, xerr xgb.Error, err error) {
	if c.isClosed() {
		return nil, nil, ErrConnectionClosed
	}
	ev, xerr = c.XUtil.Conn().WaitForEvent()
	if ev == nil && xerr == nil {
		// xgb has shut the connection down already, either after a read
		// error or because Close ran.
		c.mu.Lock()
		c.markClosed()
		c.mu.Unlock()
		return nil, nil, ErrConnectionClosed
	}
	return ev, xerr, nil
}

// Close cleanly disconnects from the X11 server. Safe to call more than once
// and from any goroutine; it waits for an in-flight request to be queued.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.markClosed() || c.XUtil == nil {
		return
	}
	defer recoverClosedChannel()
	c.XUtil.Conn().Close()
}

// markClosed records the close and reports whether it was the first. The
// caller holds c.mu.
func (c *Connection) markClosed() bool {
	if c.closed {
		return false
	}
	c.closed = true
	if c.done != nil {
		close(c.done)
	}
	return true
}

func (c *Connection) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closedLocked()
}

func (c *Connection) closedLocked() bool {
	return c.closed || c.XUtil == nil
}

// request runs send, which queues one or more xgb requests, unless the
// connection is closed. xgb closes its request queue on its own when the
// server goes away; the resulting send on a closed channel is reported as
// ErrConnectionClosed.
func (c *Connection) request(send func()) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closedLocked() {
		return ErrConnectionClosed
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			if !isClosedChannelPanic(recovered) {
				panic(recovered)
			}
			c.markClosed()
			err = ErrConnectionClosed
		}
	}()
	send()
	return nil
}

func recoverClosedChannel() {
	if recovered := recover(); recovered != nil && !isClosedChannelPanic(recovered) {
		panic(recovered)
	}
}

func isClosedChannelPanic(v any) bool {
	rerr, ok := v.(runtime.Error)
	return ok && strings.Contains(rerr.Error(), "closed channel")
}
