package mock

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// createJWT creates a signed access token for uid
func (m *Service) createJWT(uid string) (string, error) {
	m.mu.Lock()
	generation := m.generation
	ttl := m.TokenTTL
	m.mu.Unlock()
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": m.Issuer,
		"sub": uid,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
		"gen": generation,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(m.PrivateKey)
}

// authenticate returns uid of a valid bearer token
func (m *Service) authenticate(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	scheme, tokenString, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", errors.New("Malformed Authorization header")
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &m.PrivateKey.PublicKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("Invalid token: %w", err)
	}
	m.mu.Lock()
	generation := m.generation
	m.mu.Unlock()
	if gen, _ := claims["gen"].(float64); int(gen) != generation {
		return "", errors.New("Invalid token: revoked")
	}
	return claims.GetSubject()
}
