package config

import (
	"fmt"
	"strings"
	"time"
)

// Default values for the corresponding Config fields.
const (
	DefaultLaunchDelayMS = 1000
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "auto"
)

// Config holds settings for the pieces around the window manager: which
// display to open, what to launch first, and how to log. Key chords and the
// layout itself are fixed and not configurable.
type Config struct {
	// Display overrides $DISPLAY when non-empty (e.g. ":1").
	Display string `yaml:"display,omitempty"`
	// StartupApps are launched in order before connecting to the display.
	// Each entry is a command line; single and double quotes group words.
	StartupApps []string `yaml:"startup_apps"`
	// LaunchDelayMS is the pause after each startup app.
	LaunchDelayMS int    `yaml:"launch_delay_ms"`
	LogLevel      string `yaml:"log_level"`
	// LogFormat is one of: auto, text, json. auto picks text on a terminal.
	LogFormat string `yaml:"log_format"`
}

// ValidationError reports an invalid config value.
type ValidationError struct {
	Path string
	File string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %v", e.File, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DefaultConfig returns the built-in configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		StartupApps:   []string{"firefox", "alacritty"},
		LaunchDelayMS: DefaultLaunchDelayMS,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
}

// LaunchDelay returns LaunchDelayMS as a duration.
func (c *Config) LaunchDelay() time.Duration {
	return time.Duration(c.LaunchDelayMS) * time.Millisecond
}

// Validate checks every field and returns a *ValidationError for the first
// invalid one.
func (c *Config) Validate() error {
	for i, app := range c.StartupApps {
		if strings.TrimSpace(app) == "" {
			return &ValidationError{Path: fmt.Sprintf("startup_apps[%d]", i), Err: fmt.Errorf("command must not be empty")}
		}
	}
	if c.LaunchDelayMS < 0 {
		return &ValidationError{Path: "launch_delay_ms", Err: fmt.Errorf("launch_delay_ms must be >= 0")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		return &ValidationError{Path: "log_format", Err: fmt.Errorf("log_format must be one of: auto, text, json")}
	}
	return nil
}
