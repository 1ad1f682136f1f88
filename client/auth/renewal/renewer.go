package renewal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/viant/transcript/client/auth/store"
	"go.uber.org/zap"
)

// Path is the refresh endpoint path
const Path = "/auth/refresh"

var (
	// ErrMissingRefreshToken is returned when renewal is attempted without a refresh token
	ErrMissingRefreshToken = errors.New("missing refresh token")
	// ErrSessionExpired is matched by SessionExpiredError
	ErrSessionExpired = errors.New("token refresh failed")
)

// SessionExpiredError reports a rejected renewal, the store has been cleared
type SessionExpiredError struct {
	StatusCode int
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("%v: status %d", ErrSessionExpired, e.StatusCode)
}

func (e *SessionExpiredError) Is(target error) bool {
	return target == ErrSessionExpired
}

// Renewer implements the refresh token exchange
type Renewer struct {
	store    store.Store
	client   *http.Client
	endpoint string
	now      func() time.Time
	logger   *zap.Logger
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Renew exchanges the stored refresh token, replacing the credential on success and clearing it on rejection
func (r *Renewer) Renew(ctx context.Context) error {
	var refreshToken string
	if credential, ok := r.store.Credential(); ok {
		refreshToken = credential.RefreshToken
	}
	if refreshToken == "" {
		return ErrMissingRefreshToken
	}
	payload, err := json.Marshal(&refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := r.client.Do(request)
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	defer response.Body.Close()
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read refresh response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		r.logger.Info("refresh rejected, ending session", zap.Int("status", response.StatusCode))
		if err = r.store.Clear(ctx); err != nil {
			r.logger.Warn("failed to clear credential", zap.Error(err))
		}
		return &SessionExpiredError{StatusCode: response.StatusCode}
	}
	grant, err := DecodeTokenResponse(data)
	if err != nil {
		return fmt.Errorf("invalid refresh response: %w", err)
	}
	if grant.IDToken == "" {
		return fmt.Errorf("invalid refresh response: id_token was empty")
	}
	// keep the prior refresh token when the server does not rotate it
	if grant.RefreshToken == "" {
		grant.RefreshToken = refreshToken
	}
	if err = r.store.Save(ctx, grant.Credential(r.now())); err != nil {
		return err
	}
	r.logger.Debug("access token renewed", zap.String("uid", grant.UID))
	return nil
}

// New creates a renewer posting to baseURL + Path
func New(baseURL string, s store.Store, options ...Option) *Renewer {
	ret := &Renewer{
		store:    s,
		client:   http.DefaultClient,
		endpoint: strings.TrimRight(baseURL, "/") + Path,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
