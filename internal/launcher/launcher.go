package launcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"time"
)

// Launcher starts companion applications before the window manager takes
// over the display. Each process is fire-and-forget: its output is discarded
// and it is reaped in the background.
type Launcher struct {
	apps   []string
	delay  time.Duration
	logger *slog.Logger

	// start runs argv without waiting for it to exit.
	start func(argv []string) error
}

// New creates a launcher for the given command lines. delay is the pause
// after each successful start.
func New(apps []string, delay time.Duration, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Launcher{
		apps:   apps,
		delay:  delay,
		logger: logger,
		start:  startDetached,
	}
}

// Launch starts every app in order. The first app that fails to start
// aborts the sequence. Cancelling ctx interrupts the delay.
func (l *Launcher) Launch(ctx context.Context) error {
	for _, app := range l.apps {
		argv, err := splitCommand(app)
		if err != nil {
			return err
		}
		if len(argv) == 0 {
			return fmt.Errorf("empty startup command")
		}

		if err := l.start(argv); err != nil {
			return fmt.Errorf("failed to launch %q: %w", app, err)
		}
		l.logger.Info("launched application", "command", app)

		if err := sleep(ctx, l.delay); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func startDetached(argv []string) error {
	// Nil Stdin/Stdout/Stderr connect the child to the null device.
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
