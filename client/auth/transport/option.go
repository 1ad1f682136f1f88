package transport

import (
	"net/http"

	"github.com/viant/transcript/client/auth/store"
	"go.uber.org/zap"
)

type Option func(*RoundTripper)

// WithStore sets store
func WithStore(store store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithRenewer sets renewer
func WithRenewer(renewer Renewer) Option {
	return func(t *RoundTripper) {
		t.renewer = renewer
	}
}

// WithEvaluator sets staleness evaluator
func WithEvaluator(evaluator Evaluator) Option {
	return func(t *RoundTripper) {
		t.evaluator = evaluator
	}
}

// WithTransport sets underlying transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithRetryLimit sets number of renew-and-resend cycles after 401
func WithRetryLimit(limit int) Option {
	return func(t *RoundTripper) {
		if limit >= 0 {
			t.retryLimit = limit
		}
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(t *RoundTripper) {
		if logger != nil {
			t.logger = logger
		}
	}
}
