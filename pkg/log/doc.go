// Package log provides usher's structured logging facade.
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context, backed by Go's standard library slog
// text and JSON handlers. Components receive a Logger tagged via With and
// Component rather than constructing their own.
//
// Quick start:
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormat(log.FormatText),
//	)
//	l = l.With(log.Component("seats"))
//	l.Info("server started", log.Int("port", 8080))
//
// Use ApplyConfig to build a logger from a declarative Config (level and
// format strings), and RedirectStdLog to route standard library log output
// through the facade.
package log
