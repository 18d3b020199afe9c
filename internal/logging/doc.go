// Package logging builds the slog loggers used across murmur.
//
// It provides console and JSON handlers, typed attribute constructors, and
// helpers for tagging loggers with a component name. Construct loggers via
// NewFromConfig so output destination, format, and level follow the
// operator's configuration.
package logging
