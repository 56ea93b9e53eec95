package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesDefaultsForOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`
[runtime]
pause_on_start = true
`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Runtime.PauseOnStart {
		t.Fatal("expected the overridden pause_on_start to stick")
	}
	if cfg.Runtime.FixedStep != 20*time.Millisecond {
		t.Fatalf("expected default fixed_step to survive a partial file, got %v", cfg.Runtime.FixedStep)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("expected default logging config, got %+v", cfg.Logging)
	}
}

func TestLoadOverridesNestedSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`
[database]
dsn = "postgres://custom/db"
max_open_conns = 42

[scripting]
scripts_dir = "custom-scripts"
`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.DSN != "postgres://custom/db" || cfg.Database.MaxOpenConns != 42 {
		t.Fatalf("expected overridden database config, got %+v", cfg.Database)
	}
	if cfg.Scripting.ScriptsDir != "custom-scripts" {
		t.Fatalf("expected overridden scripts_dir, got %q", cfg.Scripting.ScriptsDir)
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
