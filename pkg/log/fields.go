package log

import (
	"log/slog"
	"time"
)

// Field is a structured key/value attached to a log entry.
type Field struct {
	attr slog.Attr
}

// Str creates a string field.
func Str(key, value string) Field { return Field{attr: slog.String(key, value)} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{attr: slog.Int(key, value)} }

// Int64 creates an int64 field.
func Int64(key string, value int64) Field { return Field{attr: slog.Int64(key, value)} }

// Bool creates a bool field.
func Bool(key string, value bool) Field { return Field{attr: slog.Bool(key, value)} }

// Dur creates a duration field rendered in milliseconds.
func Dur(key string, value time.Duration) Field {
	return Field{attr: slog.Int64(key, value.Milliseconds())}
}

// Err creates an error field. A nil error renders as an empty string.
func Err(err error) Field {
	if err == nil {
		return Field{attr: slog.String("error", "")}
	}
	return Field{attr: slog.String("error", err.Error())}
}

// Component tags log entries with the emitting component name.
func Component(name string) Field { return Field{attr: slog.String("component", name)} }
