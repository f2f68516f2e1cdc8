package watrix

import (
	"context"
	"io"
	"log/slog"
)

type options struct {
	logger *slog.Logger
}

// Option configures construction of a WaveletMatrix or Compressed.
type Option func(*options)

// WithLogger sets the logger that receives per-level build records at
// debug level. If nil is passed, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = discardLogger()
		}
		o.logger = l
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

func applyOptions(opts []Option) options {
	o := options{logger: discardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) debugEnabled() bool {
	return o.logger.Enabled(context.Background(), slog.LevelDebug)
}

// LoggerFrom returns the logger opts configure, for packages that build on
// this one and log alongside it.
func LoggerFrom(opts ...Option) *slog.Logger {
	return applyOptions(opts).logger
}
