package wfllog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/logbie/wfl/internal/config"
)

func TestLogger_DisabledIsANoOp(t *testing.T) {
	var buf bytes.Buffer
	opts := config.Defaults()
	opts.LoggingEnabled = false
	l := New(&buf, opts)
	l.Error("should not print")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestLogger_GatesBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	opts := config.Defaults()
	opts.LoggingEnabled = true
	opts.LogLevel = config.LogWarn
	l := New(&buf, opts)
	l.Info("below threshold")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be gated below warn, got %q", buf.String())
	}
	l.Warn("at threshold")
	if !strings.Contains(buf.String(), "at threshold") {
		t.Fatalf("expected warn to be emitted, got %q", buf.String())
	}
}
