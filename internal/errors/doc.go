// Package errors provides error handling conventions for the confcheck CLI.
//
// This package re-exports the wrapping helpers of
// github.com/cockroachdb/errors, defines sentinel errors for the failure
// classes that validation records, an ExitError type for CLI exit code
// handling, and exit code constants following standard Unix conventions.
//
// # Sentinel Errors
//
// Validation never returns these errors; it records them on each
// validation.Error so callers can classify entries with [errors.Is]:
//
//	for _, e := range result.Flattened() {
//	    if errors.Is(e, cerrors.ErrSchemaMissing) {
//	        // no schema registered for the type
//	    }
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, failed validation)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports unwrapping via [errors.Unwrap] and [errors.As]:
//
//	err := cerrors.NewUserError(cerrors.ErrInvalidConfig, "Run: confcheck config")
//	var exitErr *cerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
