package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/logbie/wfl/internal/diag"
)

func TestLoad_OverlaysRecognizedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wfl.yaml")
	if err := os.WriteFile(path, []byte("timeout_seconds: 30\nlog_level: debug\nindent_size: 2\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	bag := &diag.Bag{}
	opts, err := Load(path, bag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.TimeoutSeconds != 30 || opts.LogLevel != LogDebug || opts.IndentSize != 2 {
		t.Fatalf("unexpected options: %+v", opts)
	}
	if opts.MaxLineLength != Defaults().MaxLineLength {
		t.Fatalf("expected an unspecified option to keep its default, got %d", opts.MaxLineLength)
	}
	if bag.HasErrors() || bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %v", bag.All())
	}
}

func TestLoad_UnrecognizedKeyWarnsNotErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wfl.yaml")
	if err := os.WriteFile(path, []byte("made_up_option: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	bag := &diag.Bag{}
	_, err := Load(path, bag)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bag.HasErrors() {
		t.Fatal("unrecognized options must warn, never error")
	}
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one warning, got %v", bag.All())
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts != Defaults() {
		t.Fatalf("expected Defaults(), got %+v", opts)
	}
}
