// Package logging provides structured logging for the confcheck CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels (including a trace level below debug), propagation of a logger on a
// [context.Context], and helpers for testing. All loggers are based on the
// standard library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("sweep started", "contexts", 3, "types", 5)
//
// # Context Propagation
//
// Commands attach the configured logger to their context; library code
// retrieves it with [FromContext], which falls back to [slog.Default]:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("loading", "file", path)
//
// # Redaction
//
// The text handler masks attribute values whose keys look like credentials
// (password, token, secret, ...). Settings documents routinely carry database
// passwords, so values logged from them are safe to emit.
//
// # Pair Tags
//
// Records carrying both [PairContextKey] and [PairTypeKey] attributes are
// printed by the text handler with a "[Production Settings]" tag ahead of
// the message instead of two key=value pairs.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
