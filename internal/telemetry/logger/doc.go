// Package logger provides structured logging for rediswire.
//
// It wraps the standard library log/slog for structured JSON or text
// logging with automatic redaction of authentication material, so an
// AUTH secret never reaches a log sink even at debug level.
package logger
