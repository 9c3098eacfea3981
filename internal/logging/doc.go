// Package logging configures structured logging for cfgvault.
//
// It builds log/slog loggers with either a TTY-optimized text handler
// (colorized when the output supports it) or a JSON handler. On top of the
// standard slog levels the package defines [LevelSuccess], used by the
// backup engine to report completed operations, rendered as "OK" in text
// output.
//
// Logging is observability only: the engine never branches on logger
// behavior, and every logger-accepting component also works with
// [NewDiscard].
package logging
