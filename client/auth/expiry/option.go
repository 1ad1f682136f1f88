package expiry

import (
	"time"

	"go.uber.org/zap"
)

// Option represents evaluator option
type Option func(e *Evaluator)

// WithMargin sets renew-early margin
func WithMargin(margin time.Duration) Option {
	return func(e *Evaluator) {
		e.margin = margin
	}
}

// WithClock sets time source
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		e.now = now
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}
