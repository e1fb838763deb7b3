// Package logger sets up the process-wide slog logger: JSON lines at a level
// that can be changed while running, with credentials scrubbed from error
// attributes. It also carries helpers for asserting on log output in tests.
package logger
