package client

import (
	"net/http"
	"time"

	"github.com/viant/transcript/client/auth/store"
	"github.com/viant/transcript/client/auth/transport"
	"go.uber.org/zap"
)

// Option represents client option
type Option func(c *Client)

// WithStore sets credential store, in-memory by default
func WithStore(s store.Store) Option {
	return func(c *Client) {
		c.store = s
	}
}

// WithHTTPTransport sets the underlying transport used for every call
func WithHTTPTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.base = transport
	}
}

// WithTimeout sets per call timeout of the underlying http client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRenewMargin sets lead time before expiry at which the access token is renewed
func WithRenewMargin(margin time.Duration) Option {
	return func(c *Client) {
		c.margin = margin
	}
}

// WithRetryLimit sets number of renew-and-resend cycles after 401
func WithRetryLimit(limit int) Option {
	return func(c *Client) {
		c.retryLimit = limit
	}
}

// WithClock sets time source
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// RequestOption represents Execute option
type RequestOption func(r *http.Request)

// WithHeader sets request header
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithContentType sets request content type
func WithContentType(contentType string) RequestOption {
	return WithHeader("Content-Type", contentType)
}

// Unauthenticated sends request as is, without ensuring or attaching a credential
func Unauthenticated() RequestOption {
	return func(r *http.Request) {
		*r = *r.WithContext(transport.WithoutAuth(r.Context()))
	}
}
