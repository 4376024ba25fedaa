// Package logging assembles structured slog loggers and formatting helpers used
// across backlog.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing (including the rotating log file), and exposes context-aware
// helpers so import attempts can tag log lines with a correlation ID. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the system.
package logging
