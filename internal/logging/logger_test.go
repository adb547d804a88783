package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestPrettyHandlerComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	handler := newPrettyHandler(&buf, lvl, false)
	logger := slog.New(handler).With(String(FieldComponent, "resolver"))

	logger.Info("cache hit", String(FieldLabel, "The Matrix"))

	out := buf.String()
	if !strings.Contains(out, "resolver: cache hit") {
		t.Fatalf("expected component prefix, got %q", out)
	}
	if !strings.Contains(out, `label="The Matrix"`) {
		t.Fatalf("expected quoted label attr, got %q", out)
	}
}

func TestPrettyHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)
	handler := newPrettyHandler(&buf, lvl, false)

	if handler.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("debug should be disabled at warn level")
	}
	slog.New(handler).Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("nothing happens", Error(nil))
	logger = NewComponentLogger(nil, "imagecache")
	logger.Info("also nothing")
}
