package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/thoreinstein/confcheck/internal/errors"
	"github.com/thoreinstein/confcheck/internal/logging"
)

func restoreLogFlags(t *testing.T) {
	t.Helper()
	origVerbosity, origQuiet, origFile, origFormat := verbosity, quiet, logFile, logFormat
	origDefault := slog.Default()
	t.Cleanup(func() {
		verbosity, quiet, logFile, logFormat = origVerbosity, origQuiet, origFile, origFormat
		slog.SetDefault(origDefault)
	})
}

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	restoreLogFlags(t)

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	restoreLogFlags(t)

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"CONFCHECK_DEBUG=1", "1", slog.LevelDebug},
		{"CONFCHECK_DEBUG=true", "true", slog.LevelDebug},
		{"CONFCHECK_DEBUG=2", "2", logging.LevelTrace},
		{"CONFCHECK_DEBUG=0", "0", slog.LevelWarn},
		{"CONFCHECK_DEBUG=unknown", "foo", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv("CONFCHECK_DEBUG", tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel == slog.LevelDebug && logger.Enabled(t.Context(), logging.LevelTrace) {
				t.Error("expected Trace level to be disabled when CONFCHECK_DEBUG=1")
			}
		})
	}
}

func TestSetupLogging_FlagPrecedence(t *testing.T) {
	restoreLogFlags(t)
	t.Setenv("CONFCHECK_DEBUG", "2")
	verbosity = 1

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected Info level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected Debug level to be disabled (flag should override env var)")
	}
}

func TestSetupLogging_Quiet(t *testing.T) {
	restoreLogFlags(t)
	quiet = true
	verbosity = 0

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger := slog.Default()
	if !logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("expected Error level to be enabled")
	}
	if logger.Enabled(t.Context(), slog.LevelWarn) {
		t.Error("expected Warn level to be disabled")
	}
}

func TestSetupLogging_QuietMutualExclusion(t *testing.T) {
	restoreLogFlags(t)
	verbosity = 1
	quiet = true

	err := setupLogging(rootCmd)
	if err == nil {
		t.Fatal("expected error for --quiet with --verbose")
	}
	if code := errors.ExitCode(err); code != errors.ExitUser {
		t.Errorf("ExitCode() = %d, want %d", code, errors.ExitUser)
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	restoreLogFlags(t)
	verbosity = 1
	logFile = filepath.Join(t.TempDir(), "confcheck.log")

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	slog.Info("sweep finished", "pairs", 15)

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 || data[0] != '{' {
		t.Errorf("expected JSON log line, got %q", data)
	}
}

func TestCloseLogFile(t *testing.T) {
	restoreLogFlags(t)
	logFile = filepath.Join(t.TempDir(), "confcheck.log")

	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	f := logFileHandle
	if f == nil {
		t.Fatal("expected the log file to be held open")
	}

	if err := closeLogFile(); err != nil {
		t.Fatalf("closeLogFile failed: %v", err)
	}
	if logFileHandle != nil {
		t.Error("expected handle to be cleared")
	}
	if _, err := f.Write([]byte("x")); err == nil {
		t.Error("expected writes to a closed log file to fail")
	}
	if err := closeLogFile(); err != nil {
		t.Errorf("second closeLogFile = %v, want nil", err)
	}
}

func TestSetupLogging_ReopenClosesPrevious(t *testing.T) {
	restoreLogFlags(t)
	dir := t.TempDir()

	logFile = filepath.Join(dir, "first.log")
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	first := logFileHandle

	logFile = filepath.Join(dir, "second.log")
	if err := setupLogging(rootCmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	t.Cleanup(func() { _ = closeLogFile() })

	if _, err := first.Write([]byte("x")); err == nil {
		t.Error("expected the first log file to be closed")
	}
}

func TestSetupLogging_LogFileUnwritable(t *testing.T) {
	restoreLogFlags(t)
	logFile = filepath.Join(t.TempDir(), "missing", "confcheck.log")

	if err := setupLogging(rootCmd); err == nil {
		t.Error("expected error for unwritable log file")
	}
}
