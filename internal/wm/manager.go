package wm

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/1broseidon/splitwm/internal/platform"
	"github.com/1broseidon/splitwm/internal/tiling"
)

// Fixed key chords, in xgbutil keybind notation.
const (
	ToggleKeys = "Mod4-space"
	QuitKeys   = "Mod4-Control-q"
)

// Manager owns the tracked windows and the layout mode and drives the
// event loop. It is not safe for concurrent use; Run is the only caller of
// Handle in production.
type Manager struct {
	backend platform.Backend
	logger  *slog.Logger

	screen  platform.Screen
	mode    tiling.Mode
	windows *tiling.Tracked

	toggle platform.Chord
	quit   platform.Chord
}

// Options tunes a Manager. The zero value gives the default behavior.
type Options struct {
	Logger  *slog.Logger
	Evictor tiling.Evictor
}

// NewManager creates a manager in Horizontal mode with no tracked windows.
// No display-server calls are made until Setup.
func NewManager(backend platform.Backend, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		backend: backend,
		logger:  logger,
		mode:    tiling.Horizontal,
		windows: tiling.NewTracked(tiling.MaxTiled, opts.Evictor),
	}
}

// Setup subscribes to root window notifications and grabs the toggle and
// quit chords.
func (m *Manager) Setup() error {
	m.screen = m.backend.Screen()

	if err := m.backend.Subscribe(); err != nil {
		return fmt.Errorf("%w: subscribe to root window: %w", ErrStartup, err)
	}

	toggle, err := m.backend.GrabKey(ToggleKeys)
	if err != nil {
		return fmt.Errorf("%w: grab %s: %w", ErrStartup, ToggleKeys, err)
	}
	quit, err := m.backend.GrabKey(QuitKeys)
	if err != nil {
		return fmt.Errorf("%w: grab %s: %w", ErrStartup, QuitKeys, err)
	}
	m.toggle, m.quit = toggle, quit

	m.logger.Info("window manager started",
		"mode", m.mode,
		"screen", m.screen.Index,
		"width", m.screen.Width,
		"height", m.screen.Height,
	)
	return nil
}

// Run processes events until the quit chord is pressed, ctx is cancelled,
// or a fault occurs. Commands issued for one event are flushed before the
// next wait. Quit and cancellation return nil; a command or flush that fails
// after ctx is cancelled is treated as cancellation.
func (m *Manager) Run(ctx context.Context) error {
	for {
		if err := m.backend.Flush(); err != nil {
			if ctx.Err() != nil {
				return m.stopped(ctx)
			}
			return fmt.Errorf("%w: flush: %w", ErrCommand, err)
		}

		ev, err := m.backend.NextEvent()
		if ctx.Err() != nil {
			return m.stopped(ctx)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEventStream, err)
		}

		stop, err := m.Handle(ev)
		if err != nil {
			if ctx.Err() != nil {
				// The connection was closed under a command.
				return m.stopped(ctx)
			}
			return err
		}
		if stop {
			return nil
		}
	}
}

func (m *Manager) stopped(ctx context.Context) error {
	m.logger.Info("window manager stopping", "reason", context.Cause(ctx))
	return nil
}

// Handle applies one event. It reports stop when the loop should exit.
func (m *Manager) Handle(ev platform.Event) (stop bool, err error) {
	switch e := ev.(type) {
	case platform.MapRequest:
		return false, m.handleMapRequest(e.Window)

	case platform.DestroyNotify:
		if m.windows.Remove(e.Window) {
			m.logger.Debug("stopped tracking destroyed window", "window", e.Window)
		}
		return false, nil

	case platform.KeyPress:
		switch {
		case m.toggle.Matches(e.Mods, e.Keycode):
			return false, m.ToggleLayout()
		case m.quit.Matches(e.Mods, e.Keycode):
			m.logger.Info("quit requested, leaving event loop")
			return true, nil
		}
		return false, nil

	case platform.ProtocolError:
		m.logger.Debug("ignoring protocol error", "error", e.Err)
		return false, nil

	default:
		return false, nil
	}
}

func (m *Manager) handleMapRequest(id platform.WindowID) error {
	m.logger.Debug("map request", "window", id)

	if err := m.backend.Map(id); err != nil {
		return fmt.Errorf("%w: map window %#x: %w", ErrCommand, id, err)
	}

	// Evicted windows keep their last geometry and are not touched again.
	if evicted, ok := m.windows.Add(id); ok {
		m.logger.Debug("evicted oldest window", "window", evicted)
	}
	return m.arrange()
}

// ToggleLayout flips between Horizontal and Vertical and re-arranges.
func (m *Manager) ToggleLayout() error {
	m.mode = m.mode.Toggle()
	if err := m.arrange(); err != nil {
		return err
	}
	m.logger.Info("layout switched", "mode", m.mode)
	return nil
}

func (m *Manager) arrange() error {
	screen := tiling.Rect{Width: m.screen.Width, Height: m.screen.Height}
	for _, a := range tiling.Compute(screen, m.windows.Windows(), m.mode) {
		if err := m.backend.MoveResize(a.Window, platform.Rect(a.Bounds)); err != nil {
			return fmt.Errorf("%w: move/resize window %#x: %w", ErrCommand, a.Window, err)
		}
	}
	return nil
}

// Mode returns the current layout mode.
func (m *Manager) Mode() tiling.Mode {
	return m.mode
}

// Windows returns the tracked windows, oldest first.
func (m *Manager) Windows() []platform.WindowID {
	return m.windows.Windows()
}
