package sdk

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Logger is the subset of *zap.SugaredLogger used by the announcer, controller and waiter.
type Logger interface {
	Infof(template string, args ...any)
	Debugf(template string, args ...any)
	Warnf(template string, args ...any)
}

type contextLoggerValueT string

const ContextLoggerValue = contextLoggerValueT("timelock-logger")

var defaultLogger = sync.OnceValue(func() Logger {
	return zap.Must(zap.NewProduction()).Sugar().Named("timelock")
})

// ContextWithLogger returns a copy of ctx carrying the given logger.
func ContextWithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, ContextLoggerValue, logger)
}

// LoggerFrom returns the logger carried by ctx, or a shared production logger.
func LoggerFrom(ctx context.Context) Logger {
	if logger, ok := ctx.Value(ContextLoggerValue).(Logger); ok {
		return logger
	}

	return defaultLogger()
}
