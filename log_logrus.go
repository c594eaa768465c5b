package tdsvalue

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/denisenkom/go-tdsvalue/msdsn"
)

type logrusLogger struct {
	logger logrus.FieldLogger
}

// NewLogrusLogger returns a ContextLogger writing to a logrus logger or
// entry. Error messages are logged at error level, debug traces at debug
// level and everything else at info level.
func NewLogrusLogger(logger logrus.FieldLogger) ContextLogger {
	return logrusLogger{logger: logger}
}

func (l logrusLogger) Log(ctx context.Context, category msdsn.Log, msg string) {
	entry := l.logger.WithField("category", category.String()).WithContext(ctx)
	switch category {
	case msdsn.LogErrors:
		entry.Error(msg)
	case msdsn.LogDebug:
		entry.Debug(msg)
	default:
		entry.Info(msg)
	}
}
