// Package logging assembles the structured slog loggers used by the
// frontend daemon.
//
// The daemon writes two append-only, day-rotated streams under the
// configured log directory: frontend_info.<date>.log receives every record,
// frontend_err.<date>.log receives warnings and errors. Retention pruning
// removes rotated files past the configured window. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
