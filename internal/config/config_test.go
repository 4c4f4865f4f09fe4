package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if !slices.Equal(cfg.StartupApps, []string{"firefox", "alacritty"}) {
		t.Fatalf("unexpected default startup apps: %v", cfg.StartupApps)
	}
	if cfg.LaunchDelay() != time.Second {
		t.Fatalf("expected 1s launch delay, got %v", cfg.LaunchDelay())
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no loaded files, got %v", res.Files)
	}
	if res.Config.LogLevel != DefaultLogLevel {
		t.Fatalf("expected default log level, got %q", res.Config.LogLevel)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LaunchDelayMS != DefaultLaunchDelayMS {
		t.Fatalf("expected default delay, got %d", res.Config.LaunchDelayMS)
	}
	if !slices.Equal(res.Files, []string{path}) {
		t.Fatalf("Files = %v, want [%s]", res.Files, path)
	}
}

func TestLoadFromPath_Overrides(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		`display: ":1"`,
		"startup_apps:",
		"  - xterm -fa Monospace",
		"launch_delay_ms: 250",
		"log_level: debug",
		"log_format: json",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Display != ":1" {
		t.Fatalf("expected display :1, got %q", cfg.Display)
	}
	if !slices.Equal(cfg.StartupApps, []string{"xterm -fa Monospace"}) {
		t.Fatalf("unexpected startup apps: %v", cfg.StartupApps)
	}
	if cfg.LaunchDelay() != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", cfg.LaunchDelay())
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected logging settings: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadFromPath_EmptyAppListDisablesLaunching(t *testing.T) {
	path := writeConfig(t, "startup_apps: []\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Config.StartupApps) != 0 {
		t.Fatalf("expected no startup apps, got %v", res.Config.StartupApps)
	}
}

func TestLoadFromPath_UnknownKeyFails(t *testing.T) {
	path := writeConfig(t, "toggle_hotkey: Mod1-t\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadFromPath_InvalidValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		path     string
	}{
		{"log level", "log_level: loud\n", "log_level"},
		{"log format", "log_format: xml\n", "log_format"},
		{"negative delay", "launch_delay_ms: -1\n", "launch_delay_ms"},
		{"blank app", "startup_apps: [\"  \"]\n", "startup_apps[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeConfig(t, tt.contents)
			_, err := LoadFromPath(file)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Path != tt.path {
				t.Fatalf("Path = %q, want %q", verr.Path, tt.path)
			}
			if verr.File != file {
				t.Fatalf("File = %q, want %q", verr.File, file)
			}
		})
	}
}

func TestDefaultConfigPath_EnvOverride(t *testing.T) {
	t.Setenv(PathEnv, "/tmp/custom-splitwm.yaml")

	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() error: %v", err)
	}
	if got != "/tmp/custom-splitwm.yaml" {
		t.Fatalf("DefaultConfigPath() = %q", got)
	}
}

func TestDefaultConfigPath_UsesXDGConfigHome(t *testing.T) {
	td := t.TempDir()
	// Registered first so it runs after the env vars are restored.
	t.Cleanup(xdg.Reload)
	t.Setenv(PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", td)
	xdg.Reload()

	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("DefaultConfigPath() error: %v", err)
	}
	if want := filepath.Join(td, "splitwm", "config.yaml"); got != want {
		t.Fatalf("DefaultConfigPath() = %q, want %q", got, want)
	}
}
