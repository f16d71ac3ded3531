package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func redirectHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("AppData", filepath.Join(dir, "AppData", "Roaming"))
	t.Setenv("USERPROFILE", dir)
	return dir
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.General.TelemetryOptIn {
		t.Fatalf("telemetry must default to off")
	}
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		t.Fatalf("window defaults must be positive: %+v", cfg.Window)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	redirectHome(t)

	cfg := Defaults()
	cfg.General.Theme = "dark"
	cfg.Window.Width = 1024
	cfg.Logging.Level = "debug"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.Theme != "dark" || got.Window.Width != 1024 || got.Logging.Level != "debug" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	redirectHome(t)
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	redirectHome(t)
	cfg := Defaults()
	cfg.Logging.Level = "warn"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvTelemetryOptIn, "yes")
	t.Setenv(EnvTheme, "Light")

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Logging.Level != "error" {
		t.Fatalf("env log level override lost: %+v", got.Logging)
	}
	if !got.General.TelemetryOptIn || got.General.Theme != "light" {
		t.Fatalf("env overrides not applied: %+v", got.General)
	}
}

func TestMergeIgnoresEmptyAndZeroValues(t *testing.T) {
	dst := Defaults()
	src := AppConfig{} // everything zero
	mergeInto(&dst, &src)
	def := Defaults()
	if dst.Window != def.Window || dst.Logging.Level != def.Logging.Level {
		t.Fatalf("zero-valued file config must not clobber defaults: %+v", dst)
	}
}

func TestSavedFileIsYAML(t *testing.T) {
	redirectHome(t)
	if err := Save(Defaults()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	path, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(b), "config_version:") {
		t.Fatalf("config file does not look like YAML: %q", string(b))
	}
}
