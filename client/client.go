package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/viant/transcript/client/auth/expiry"
	"github.com/viant/transcript/client/auth/renewal"
	"github.com/viant/transcript/client/auth/store"
	"github.com/viant/transcript/client/auth/transport"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Client represents transcript service client
type Client struct {
	baseURL    string
	store      store.Store
	base       http.RoundTripper
	timeout    time.Duration
	margin     time.Duration
	retryLimit int
	now        func() time.Time
	logger     *zap.Logger

	evaluator *expiry.Evaluator
	renewer   *renewal.Renewer
	transport *transport.RoundTripper
	http      *http.Client
}

// Store returns credential store
func (c *Client) Store() store.Store {
	return c.store
}

// Transport returns the authenticating transport
func (c *Client) Transport() *transport.RoundTripper {
	return c.transport
}

// IsLoggedIn returns true when an access token is stored, regardless of its expiry
func (c *Client) IsLoggedIn() bool {
	_, ok := c.store.Credential()
	return ok
}

// AccessToken returns stored access token or empty string
func (c *Client) AccessToken() string {
	if credential, ok := c.store.Credential(); ok {
		return credential.AccessToken
	}
	return ""
}

// UserID returns authenticated user id or empty string
func (c *Client) UserID() string {
	if credential, ok := c.store.Credential(); ok {
		return credential.UserID
	}
	return ""
}

// TokenSource returns oauth2 token source sharing this client session
func (c *Client) TokenSource(ctx context.Context) oauth2.TokenSource {
	return c.transport.TokenSource(ctx)
}

// Execute sends a request to path; unless Unauthenticated is used the call requires a stored credential
func (c *Client) Execute(ctx context.Context, method, path string, body io.Reader, options ...RequestOption) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	for _, opt := range options {
		opt(request)
	}
	response, err := c.http.Do(request)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && isSessionError(urlErr.Err) {
			return nil, urlErr.Err
		}
		return nil, err
	}
	return response, nil
}

func isSessionError(err error) bool {
	return errors.Is(err, transport.ErrNotAuthenticated) ||
		errors.Is(err, renewal.ErrSessionExpired) ||
		errors.Is(err, renewal.ErrMissingRefreshToken)
}

// send executes request and reads the whole response body
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, options ...RequestOption) (int, []byte, error) {
	response, err := c.Execute(ctx, method, path, body, options...)
	if err != nil {
		return 0, nil, err
	}
	defer response.Body.Close()
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return response.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return response.StatusCode, data, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// New creates a client and restores the persisted session, if any
func New(ctx context.Context, baseURL string, options ...Option) (*Client, error) {
	ret := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		base:       http.DefaultTransport,
		margin:     expiry.DefaultMargin,
		retryLimit: transport.DefaultRetryLimit,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.store == nil {
		ret.store = store.NewMemoryStore(store.WithLogger(ret.logger))
	}
	if err := ret.store.Load(ctx); err != nil {
		ret.logger.Warn("starting without a session", zap.Error(err))
	}
	ret.evaluator = expiry.New(ret.store,
		expiry.WithMargin(ret.margin),
		expiry.WithClock(ret.now),
		expiry.WithLogger(ret.logger))
	ret.renewer = renewal.New(ret.baseURL, ret.store,
		renewal.WithHTTPClient(&http.Client{Transport: ret.base, Timeout: ret.timeout}),
		renewal.WithClock(ret.now),
		renewal.WithLogger(ret.logger))
	var err error
	ret.transport, err = transport.New(
		transport.WithStore(ret.store),
		transport.WithRenewer(ret.renewer),
		transport.WithEvaluator(ret.evaluator),
		transport.WithTransport(ret.base),
		transport.WithRetryLimit(ret.retryLimit),
		transport.WithLogger(ret.logger))
	if err != nil {
		return nil, err
	}
	ret.http = &http.Client{Transport: ret.transport, Timeout: ret.timeout}
	return ret, nil
}
