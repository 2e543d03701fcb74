package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandler_FansOut(t *testing.T) {
	var console, file bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&console, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
		nil,
	)
	logger := slog.New(h).With("run", "abc")

	logger.Debug("loading file", "file", "Settings.yaml")
	logger.Warn("schema skipped")

	if strings.Contains(console.String(), "loading file") {
		t.Error("console handler should filter debug records")
	}
	if !strings.Contains(console.String(), "schema skipped") {
		t.Errorf("console missing warn record: %q", console.String())
	}
	if got := strings.Count(file.String(), "\n"); got != 2 {
		t.Errorf("file handler got %d records, want 2: %q", got, file.String())
	}
	if !strings.Contains(file.String(), `"run":"abc"`) {
		t.Errorf("file handler missing WithAttrs attribute: %q", file.String())
	}
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected info disabled")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("expected error enabled")
	}
}
