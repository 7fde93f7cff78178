// Package errors provides error handling conventions for the contentdef CLI.
//
// It re-exports the wrapping helpers from github.com/cockroachdb/errors so
// callers import a single errors package, and defines an ExitError type that
// carries a process exit code and an optional suggestion for the user.
//
// # Exit Codes
//
//   - ExitSuccess (0): command completed successfully
//   - ExitUser (1): invalid content, unknown collection, bad configuration
//   - ExitSystem (2): I/O or other environmental failure
//
// # ExitError
//
//	err := errors.NewUserError(schema.ErrNotFound, "Run: contentdef schema list")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
