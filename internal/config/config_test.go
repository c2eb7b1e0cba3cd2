package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Output.Color {
		t.Error("expected color output to default to true")
	}
	if cfg.Output.Verbose {
		t.Error("expected verbose to default to false")
	}
	if cfg.Output.Format != "table" {
		t.Errorf("expected format table, got %s", cfg.Output.Format)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("expected default format, got %s", cfg.Output.Format)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[output]
color = false
verbose = true
format = "json"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Color {
		t.Error("expected color = false from file")
	}
	if !cfg.Output.Verbose {
		t.Error("expected verbose = true from file")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected format json, got %s", cfg.Output.Format)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(configPath, []byte("[output]\nformat = \"table\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("EXAMPLAN_FORMAT", "json")
	t.Setenv("EXAMPLAN_VERBOSE", "true")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected env override to win, got format %s", cfg.Output.Format)
	}
	if !cfg.Output.Verbose {
		t.Error("expected EXAMPLAN_VERBOSE=true to override the file")
	}
}

func TestValidate_RejectsUnknownFormat(t *testing.T) {
	cfg := Default()
	cfg.Output.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an unsupported output format")
	}
}
