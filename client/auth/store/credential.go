package store

import (
	"time"

	"golang.org/x/oauth2"
)

// Credential represents the persisted authentication state
type Credential struct {
	AccessToken  string `json:"idToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	UserID       string `json:"uid,omitempty"`
	ExpiresAtMs  int64  `json:"expMs,omitempty"`
}

// IsComplete returns true when all identity fields are set; expiry may still be derived from the access token
func (c *Credential) IsComplete() bool {
	return c != nil && c.AccessToken != "" && c.RefreshToken != "" && c.UserID != ""
}

// ExpiresAt returns stored expiry or zero time
func (c *Credential) ExpiresAt() time.Time {
	if c == nil || c.ExpiresAtMs == 0 {
		return time.Time{}
	}
	return time.UnixMilli(c.ExpiresAtMs)
}

// Token returns credential as oauth2 token
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		TokenType:    "Bearer",
		RefreshToken: c.RefreshToken,
		Expiry:       c.ExpiresAt(),
	}
}

func (c *Credential) clone() *Credential {
	ret := *c
	return &ret
}

// merge applies non-empty fields of update; expiry always travels with the access token
func (c *Credential) merge(update *Credential) *Credential {
	ret := c.clone()
	if update.AccessToken != "" {
		ret.AccessToken = update.AccessToken
		ret.ExpiresAtMs = update.ExpiresAtMs
	} else if update.ExpiresAtMs != 0 {
		ret.ExpiresAtMs = update.ExpiresAtMs
	}
	if update.RefreshToken != "" {
		ret.RefreshToken = update.RefreshToken
	}
	if update.UserID != "" {
		ret.UserID = update.UserID
	}
	return ret
}
