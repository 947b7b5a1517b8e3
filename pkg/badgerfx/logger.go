package badgerfx

import (
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// badgerLogger adapts a sugared zap logger to badger.Logger. Badger reports
// routine compaction progress at info level, so it is logged as debug.
type badgerLogger struct {
	*zap.SugaredLogger
}

func newLogger(l *zap.Logger) *badgerLogger {
	return &badgerLogger{
		SugaredLogger: l.WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

func (l *badgerLogger) Infof(format string, a ...any) {
	l.Debugf(format, a...)
}

func (l *badgerLogger) Warningf(format string, a ...any) {
	l.Warnf(format, a...)
}

var _ badger.Logger = (*badgerLogger)(nil)
