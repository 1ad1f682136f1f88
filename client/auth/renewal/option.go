package renewal

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option represents renewer option
type Option func(r *Renewer)

// WithHTTPClient sets client used for the refresh call; it must not inject the access token
func WithHTTPClient(client *http.Client) Option {
	return func(r *Renewer) {
		r.client = client
	}
}

// WithClock sets time source used to compute expiry from expires_in
func WithClock(now func() time.Time) Option {
	return func(r *Renewer) {
		r.now = now
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renewer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
