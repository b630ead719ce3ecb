package store

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingRecorder is a decorator that logs the outcome of every append.
type LoggingRecorder struct {
	inner  AttemptRecorder
	name   string
	logger *zap.Logger
}

// WithLogging wraps r so each append is logged under name.
func WithLogging(r AttemptRecorder, name string, logger *zap.Logger) AttemptRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingRecorder{inner: r, name: name, logger: logger}
}

func (l *LoggingRecorder) AppendEquationAttempt(ctx context.Context, data EquationAttemptData) error {
	start := time.Now()
	err := l.inner.AppendEquationAttempt(ctx, data)
	l.log(KindEquations, data.ID, data.SetID, start, err)
	return err
}

func (l *LoggingRecorder) AppendCurrentAttempt(ctx context.Context, data CurrentAttemptData) error {
	start := time.Now()
	err := l.inner.AppendCurrentAttempt(ctx, data)
	l.log(KindCurrents, data.ID, data.SetID, start, err)
	return err
}

func (l *LoggingRecorder) log(k Kind, id string, setID int, start time.Time, err error) {
	fields := []zap.Field{
		zap.String("recorder", l.name),
		zap.String("kind", string(k)),
		zap.String("attempt_id", id),
		zap.Int("set", setID),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		l.logger.Warn("record attempt failed", append(fields, zap.Error(err))...)
		return
	}
	l.logger.Debug("attempt recorded", fields...)
}
