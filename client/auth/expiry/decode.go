package expiry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken is returned when token payload is not a base64url JSON segment
	ErrMalformedToken = errors.New("malformed access token")
	// ErrMissingExpiry is returned when token payload has no exp claim
	ErrMissingExpiry = errors.New("access token has no exp claim")
)

var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode returns exp claim of the second dot-separated token segment; header and signature are not inspected
func Decode(token string) (time.Time, error) {
	segments := strings.Split(token, ".")
	if len(segments) < 2 {
		return time.Time{}, fmt.Errorf("%w: expected payload segment", ErrMalformedToken)
	}
	payload, err := parser.DecodeSegment(segments[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	claims := jwt.MapClaims{}
	if err = json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if exp == nil {
		return time.Time{}, ErrMissingExpiry
	}
	return exp.Time, nil
}
