// Package errors provides error handling conventions for the cfgvault CLI.
//
// It defines exit code constants following standard Unix conventions and an
// [ExitError] type that carries an exit code and an optional suggestion to
// the outermost entry point. Engine-level sentinel errors (missing sources,
// size mismatches, busy targets) live in the backup package next to the code
// that produces them; this package only covers the CLI boundary.
//
//	err := cliErrors.NewUserError(err, "run: cfgvault list")
//	var exitErr *cliErrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
