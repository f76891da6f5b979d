// Package logging wraps zap into the small sugared-logger surface the rest
// of this module codes against: construct-by-name, atomic level, and a
// Sublogger for per-component scoping. There is no net appender or
// proto-conversion layer here; nothing in this module talks to a server.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var zapStdout = os.Stdout

// Logger is the logging surface used throughout this module.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})

	// SetLevel changes the minimum level this logger will emit.
	SetLevel(level Level)

	// Sublogger returns a logger scoped under this logger's name, e.g.
	// the search driver's logger might spawn a Sublogger("heuristic").
	Sublogger(name string) Logger

	// Named returns the underlying sugared zap logger, named. Escape hatch
	// for callers who want zap fields directly.
	Named(name string) *zap.SugaredLogger
}

// NewLogger returns a logger that emits Info and above to stdout.
func NewLogger(name string) Logger {
	return newZapLogger(name, zapcore.InfoLevel)
}

// NewDebugLogger returns a logger that emits Debug and above to stdout.
func NewDebugLogger(name string) Logger {
	return newZapLogger(name, zapcore.DebugLevel)
}

func newZapLogger(name string, level zapcore.Level) *impl {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	atomic := zap.NewAtomicLevelAt(level)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(zapcore.AddSync(zapStdout)), atomic)
	base := zap.New(core, zap.AddCaller()).Named(name).Sugar()

	return &impl{name: name, level: atomic, sugared: base}
}
