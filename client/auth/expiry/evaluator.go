package expiry

import (
	"time"

	"github.com/viant/transcript/client/auth/store"
	"go.uber.org/zap"
)

// DefaultMargin is lead time before expiry at which a token is renewed
const DefaultMargin = 60 * time.Second

// Evaluator evaluates stored credential staleness
type Evaluator struct {
	store  store.Store
	margin time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// ExpiresAt returns the instant after which credential access token must not be used
func (e *Evaluator) ExpiresAt(credential *store.Credential) (time.Time, error) {
	if credential.ExpiresAtMs != 0 {
		return credential.ExpiresAt(), nil
	}
	return Decode(credential.AccessToken)
}

// IsStale returns true if credential is missing, undecodable or within the renew-early margin
func (e *Evaluator) IsStale(credential *store.Credential) bool {
	if credential == nil || credential.AccessToken == "" {
		return true
	}
	expiresAt, err := e.ExpiresAt(credential)
	if err != nil {
		e.logger.Debug("treating access token as stale", zap.Error(err))
		return true
	}
	return !e.now().Before(expiresAt.Add(-e.margin))
}

// IsStaleOrMissing evaluates the credential currently held by the store
func (e *Evaluator) IsStaleOrMissing() bool {
	credential, _ := e.store.Credential()
	return e.IsStale(credential)
}

// New creates an evaluator
func New(s store.Store, options ...Option) *Evaluator {
	ret := &Evaluator{
		store:  s,
		margin: DefaultMargin,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
