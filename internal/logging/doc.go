// Package logging assembles the structured slog loggers used across persona.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so stage code tags log lines with
// profile IDs, stages, and run IDs under uniform keys. A no-op logger is
// provided for tests.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
