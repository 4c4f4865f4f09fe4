package wm

import "errors"

// Fault classes. Every error returned by Setup or Run wraps exactly one of
// these together with the underlying cause.
var (
	// ErrStartup means the manager could not take over the screen.
	ErrStartup = errors.New("startup failed")
	// ErrCommand means a command to the display server failed.
	ErrCommand = errors.New("display command failed")
	// ErrEventStream means waiting for the next event failed.
	ErrEventStream = errors.New("event stream failed")
)
