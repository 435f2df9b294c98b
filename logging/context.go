package logging

import (
	"context"

	"github.com/go-kit/log"
)

type loggerContextKey struct{}

// WithLogger returns a copy of parent that carries logger.  Handlers further down a chain
// retrieve it with GetLogger.
func WithLogger(parent context.Context, logger log.Logger) context.Context {
	return context.WithValue(parent, loggerContextKey{}, logger)
}

// GetLogger returns the request logger stored by WithLogger, or DefaultLogger when the
// context has none.
func GetLogger(ctx context.Context) log.Logger {
	logger, ok := ctx.Value(loggerContextKey{}).(log.Logger)
	if !ok {
		return DefaultLogger()
	}

	return logger
}
