package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// NewTestLogger returns a Logger that writes Debug+ logs through tb.Log, so
// they associate with the running test rather than bleeding into stdout.
func NewTestLogger(tb testing.TB) Logger {
	zl := zaptest.NewLogger(tb, zaptest.Level(DEBUG.zapLevel()))
	return &impl{name: "", level: zap.NewAtomicLevel(), sugared: zl.Sugar()}
}
