package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("sweep finished", "pairs", 15, "failed", 2)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed), "output: %s", buf.String())
	assert.Equal(t, "sweep finished", parsed["msg"])
	assert.Equal(t, "INFO", parsed["level"])
	assert.EqualValues(t, 15, parsed["pairs"])
	assert.EqualValues(t, 2, parsed["failed"])
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})

	logger.Info("loading configuration", "context", "Production")

	out := buf.String()
	assert.False(t, json.Valid(buf.Bytes()), "text format should not be JSON")
	assert.Contains(t, out, "loading configuration")
	assert.Contains(t, out, "context=Production")
	assert.Contains(t, out, "INFO")
}

func TestNew_UnknownFormatDefaultsToText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: Format("xml"), Output: &buf})

	logger.Info("message")

	assert.False(t, json.Valid(buf.Bytes()))
	assert.Contains(t, buf.String(), "message")
}

func TestConstructors(t *testing.T) {
	assert.NotNil(t, New(Config{}), "nil output falls back to stderr")
	assert.NotNil(t, Default())

	discard := NewDiscard()
	require.NotNil(t, discard)
	discard.Error("dropped", "err", "nothing listens")
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		config slog.Level
		log    slog.Level
		want   bool
	}{
		{"info at info", slog.LevelInfo, slog.LevelInfo, true},
		{"debug at info", slog.LevelInfo, slog.LevelDebug, false},
		{"error at warn", slog.LevelWarn, slog.LevelError, true},
		{"info at warn", slog.LevelWarn, slog.LevelInfo, false},
		{"trace at debug", slog.LevelDebug, LevelTrace, false},
		{"trace at trace", LevelTrace, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.config, Format: FormatText, Output: &buf})

			logger.Log(t.Context(), tt.log, "schema applied")

			assert.Equal(t, tt.want, buf.Len() > 0, "output: %q", buf.String())
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{7, LevelTrace},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFromVerbosity(tt.verbosity), "verbosity %d", tt.verbosity)
	}
	assert.Less(t, LevelTrace, slog.LevelDebug)
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	require.NotNil(t, logger)

	assert.True(t, logger.Enabled(t.Context(), LevelTrace))
	logger.Log(t.Context(), LevelTrace, "trace from test logger", "test", t.Name())
}

func TestTestWriter_TrimsNewline(t *testing.T) {
	tw := &testWriter{t: t}

	for _, in := range []string{"with newline\n", "without newline", ""} {
		n, err := tw.Write([]byte(in))
		require.NoError(t, err)
		assert.Equal(t, len(in), n)
	}
}
