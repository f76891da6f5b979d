package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity a Logger will emit.
type Level int

// Severity levels, ordered low to high.
const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

type impl struct {
	name    string
	level   zap.AtomicLevel
	sugared *zap.SugaredLogger
}

func (imp *impl) SetLevel(level Level) {
	imp.level.SetLevel(level.zapLevel())
}

func (imp *impl) Sublogger(name string) Logger {
	newName := name
	if imp.name != "" {
		newName = imp.name + "." + name
	}
	return &impl{name: newName, level: imp.level, sugared: imp.sugared.Named(name)}
}

func (imp *impl) Named(name string) *zap.SugaredLogger {
	return imp.sugared.Named(name)
}

func (imp *impl) Debug(args ...interface{})                 { imp.sugared.Debug(args...) }
func (imp *impl) Debugf(tpl string, args ...interface{})    { imp.sugared.Debugf(tpl, args...) }
func (imp *impl) Debugw(msg string, kv ...interface{})      { imp.sugared.Debugw(msg, kv...) }
func (imp *impl) Info(args ...interface{})                  { imp.sugared.Info(args...) }
func (imp *impl) Infof(tpl string, args ...interface{})     { imp.sugared.Infof(tpl, args...) }
func (imp *impl) Infow(msg string, kv ...interface{})       { imp.sugared.Infow(msg, kv...) }
func (imp *impl) Warn(args ...interface{})                  { imp.sugared.Warn(args...) }
func (imp *impl) Warnf(tpl string, args ...interface{})     { imp.sugared.Warnf(tpl, args...) }
func (imp *impl) Error(args ...interface{})                 { imp.sugared.Error(args...) }
func (imp *impl) Errorf(tpl string, args ...interface{})    { imp.sugared.Errorf(tpl, args...) }
