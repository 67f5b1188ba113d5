package logrus

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/taskbridge/taskstore/internal/log"
)

type logger struct {
	*logrus.Entry
}

// NewLogrus returns a log.Logger implemented with a logrus entry.
func NewLogrus(l *logrus.Entry) log.Logger {
	return logger{Entry: l}
}

func (l logger) WithValues(kv map[string]any) log.Logger {
	newLogger := l.Entry.WithFields(kv)
	return NewLogrus(newLogger)
}

func (l logger) WithCtxValues(ctx context.Context) log.Logger {
	return l.WithValues(log.ValuesFromCtx(ctx))
}

func (l logger) SetValuesOnCtx(parent context.Context, values map[string]any) context.Context {
	return log.CtxWithValues(parent, values)
}

func (l logger) Warningf(format string, args ...any) { l.Warnf(format, args...) }
