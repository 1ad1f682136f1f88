package transport

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/viant/transcript/client/auth/expiry"
	"github.com/viant/transcript/client/auth/store"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// DefaultRetryLimit is the number of renew-and-resend cycles after a 401
const DefaultRetryLimit = 1

// RequestIDHeader carries the logical call id, shared by the original attempt and its retry
const RequestIDHeader = "X-Request-ID"

// ErrNotAuthenticated is returned for authenticated requests made without a stored credential
var ErrNotAuthenticated = errors.New("not authenticated")

// Renewer renews the stored credential
type Renewer interface {
	Renew(ctx context.Context) error
}

// Evaluator reports whether the stored credential has to be renewed before use
type Evaluator interface {
	IsStaleOrMissing() bool
}

type RoundTripper struct {
	store      store.Store
	renewer    Renewer
	evaluator  Evaluator
	transport  http.RoundTripper
	retryLimit int
	logger     *zap.Logger
}

func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport:  http.DefaultTransport,
		retryLimit: DefaultRetryLimit,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.store == nil {
		return nil, errors.New("credential store was empty")
	}
	if ret.renewer == nil {
		return nil, errors.New("renewer was empty")
	}
	if ret.evaluator == nil {
		ret.evaluator = expiry.New(ret.store, expiry.WithLogger(ret.logger))
	}
	return ret, nil
}

func (r *RoundTripper) Store() store.Store {
	return r.store
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if !isAuthRequired(ctx) {
		return r.transport.RoundTrip(req)
	}
	requestID := getRequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := r.logger.With(zap.String("requestID", requestID), zap.String("method", req.Method), zap.String("path", req.URL.Path))

	// body is buffered once and replayed on every attempt
	body, err := readBody(req)
	if err != nil {
		return nil, err
	}
	var (
		resp    *http.Response
		retries int
	)
	for current := stateFresh; current != stateDone; {
		switch current {
		case stateFresh:
			if _, ok := r.store.Credential(); !ok {
				return nil, ErrNotAuthenticated
			}
			current = stateSent
			if r.evaluator.IsStaleOrMissing() {
				current = stateRenewing
			}
		case stateRenewing:
			logger.Debug("access token stale, renewing", zap.Stringer("state", current))
			if err = r.renewer.Renew(ctx); err != nil {
				return nil, err
			}
			current = stateSent
		case stateSent:
			credential, ok := r.store.Credential()
			if !ok {
				return nil, ErrNotAuthenticated
			}
			attempt := clone(req, body)
			attempt.Header.Set("Authorization", "Bearer "+credential.AccessToken)
			attempt.Header.Set(RequestIDHeader, requestID)
			if resp, err = r.transport.RoundTrip(attempt); err != nil {
				return nil, err
			}
			current = stateDone
			if resp.StatusCode == http.StatusUnauthorized && credential.RefreshToken != "" && retries < r.retryLimit {
				current = stateRetryingAfter401
			}
		case stateRetryingAfter401:
			logger.Debug("request rejected with 401, renewing and resending", zap.Stringer("state", current), zap.Int("retry", retries+1))
			discard(resp)
			retries++
			if err = r.renewer.Renew(ctx); err != nil {
				return nil, err
			}
			current = stateSent
		}
	}
	return resp, nil
}

// Fresh returns the stored credential, renewing it first when stale
func (r *RoundTripper) Fresh(ctx context.Context) (*store.Credential, error) {
	if _, ok := r.store.Credential(); !ok {
		return nil, ErrNotAuthenticated
	}
	if r.evaluator.IsStaleOrMissing() {
		if err := r.renewer.Renew(ctx); err != nil {
			return nil, err
		}
	}
	credential, ok := r.store.Credential()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	return credential, nil
}

// TokenSource returns an oauth2 token source backed by the stored credential
func (r *RoundTripper) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, transport: r}
}

type tokenSource struct {
	ctx       context.Context
	transport *RoundTripper
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	credential, err := s.transport.Fresh(s.ctx)
	if err != nil {
		return nil, err
	}
	return credential.Token(), nil
}
