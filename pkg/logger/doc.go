// Package logger builds the slog.Logger the SDK components log through.
//
// The session manager only logs on its degrade-and-continue paths (store
// unavailability, best-effort logout notification failures), so the default
// logger is quiet at info level in text format on stderr. FromStrings maps
// the config file's level/format strings onto a ready logger for the CLI.
package logger
