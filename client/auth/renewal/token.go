package renewal

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/viant/transcript/client/auth/expiry"
	"github.com/viant/transcript/client/auth/store"
)

// Seconds is a duration in seconds, encoded by servers either as a number or a numeric string
type Seconds int64

func (s *Seconds) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*s = 0
		return nil
	}
	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = Seconds(value)
	return nil
}

// TokenResponse is the token grant returned by signup, login and refresh endpoints
type TokenResponse struct {
	UID          string  `json:"uid"`
	IDToken      string  `json:"id_token"`
	RefreshToken string  `json:"refresh_token,omitempty"`
	ExpiresIn    Seconds `json:"expires_in,omitempty"`
	Email        string  `json:"email,omitempty"`
	DisplayName  string  `json:"display_name,omitempty"`
}

// Credential converts grant to credential; explicit expires_in wins over the token exp claim
func (r *TokenResponse) Credential(now time.Time) *store.Credential {
	ret := &store.Credential{
		AccessToken:  r.IDToken,
		RefreshToken: r.RefreshToken,
		UserID:       r.UID,
	}
	if r.ExpiresIn > 0 {
		ret.ExpiresAtMs = now.Add(time.Duration(r.ExpiresIn) * time.Second).UnixMilli()
	} else if expiresAt, err := expiry.Decode(r.IDToken); err == nil {
		ret.ExpiresAtMs = expiresAt.UnixMilli()
	}
	return ret
}

// DecodeTokenResponse decodes grant payload
func DecodeTokenResponse(data []byte) (*TokenResponse, error) {
	ret := &TokenResponse{}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, err
	}
	return ret, nil
}
