package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// MapWindow asks the server to show a window. The request is not checked;
// failures for an individual window come back through WaitForEvent and a
// dead connection is reported by the next Sync. It returns
// ErrConnectionClosed once the connection is closed.
func (c *Connection) MapWindow(windowID xproto.Window) error {
	return c.request(func() {
		xwindow.New(c.XUtil, windowID).Map()
	})
}

// MoveResizeWindow moves and resizes a window to the specified geometry.
// Like MapWindow it is unchecked and pipelined in issue order.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	return c.request(func() {
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	})
}
