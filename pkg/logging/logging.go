package logging

import (
	"context"

	"go.uber.org/zap"
)

type Logger interface {
	Log(ctx context.Context, msg string, keyvals ...interface{})
}

type zapLogger struct {
	logger *zap.SugaredLogger
}

// NewLogger returns an error only on hardware error.
func NewLogger() (Logger, error) {
	logger, err := zap.NewProduction(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}

	return zapLogger{
		logger: logger.Sugar(),
	}, nil
}

func (l zapLogger) Log(_ context.Context, msg string, keyvals ...interface{}) {
	l.logger.Infow(msg, keyvals...)
}
