package mock

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"sync"
	"time"
)

type user struct {
	UID         string
	Email       string
	Password    string
	DisplayName string
}

// Transcript is a stored transcript
type Transcript struct {
	ID        string                   `json:"id"`
	UID       string                   `json:"uid"`
	Text      string                   `json:"text"`
	Words     []map[string]interface{} `json:"words"`
	Filename  string                   `json:"filename,omitempty"`
	Model     string                   `json:"model"`
	CreatedAt string                   `json:"createdAt"`
}

// Service simulates the transcript api
type Service struct {
	Issuer     string
	PrivateKey *rsa.PrivateKey
	// TokenTTL is the access token lifetime
	TokenTTL time.Duration
	// RotateRefreshTokens issues a new refresh token on every refresh
	RotateRefreshTokens bool
	// ExpiresIn is reported by refresh responses when positive
	ExpiresIn int

	LoginHandler   http.HandlerFunc
	SignupHandler  http.HandlerFunc
	RefreshHandler http.HandlerFunc

	mu            sync.Mutex
	generation    int
	users         map[string]*user
	refreshTokens map[string]string
	transcripts   map[string]*Transcript
	order         []string
	calls         map[string]int
}

// AddUser registers an account
func (m *Service) AddUser(uid, email, password, displayName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[email] = &user{UID: uid, Email: email, Password: password, DisplayName: displayName}
}

// Revoke invalidates every access token issued so far
func (m *Service) Revoke() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generation++
}

// RevokeRefreshTokens invalidates every refresh token issued so far
func (m *Service) RevokeRefreshTokens() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshTokens = map[string]string{}
}

// Calls returns number of requests received for "METHOD /path"
func (m *Service) Calls(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[key]
}

func (m *Service) count(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[key]++
}

// Handler returns http handler
func (m *Service) Handler() http.Handler {
	return &Handler{Service: m}
}

// NewService creates a mock service
func NewService() (*Service, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	return &Service{
		PrivateKey:    privateKey,
		TokenTTL:      time.Hour,
		users:         map[string]*user{},
		refreshTokens: map[string]string{},
		transcripts:   map[string]*Transcript{},
		calls:         map[string]int{},
	}, nil
}
