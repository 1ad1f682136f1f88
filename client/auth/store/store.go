package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// DefaultKey is the backend key holding the serialized credential
const DefaultKey = "authTokens"

// ErrNotFound is returned by a backend when key does not exist
var ErrNotFound = errors.New("credential not found")

// Store is the single source of truth for the client credential.
type Store interface {
	Load(ctx context.Context) error
	Credential() (*Credential, bool)
	Save(ctx context.Context, update *Credential) error
	Clear(ctx context.Context) error
}

// Backend is a persistent key-value surface
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Option represents store option
type Option func(s *credentialStore)

// WithKey sets backend key
func WithKey(key string) Option {
	return func(s *credentialStore) {
		s.key = key
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *credentialStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type credentialStore struct {
	mu      sync.RWMutex
	key     string
	backend Backend
	logger  *zap.Logger
	current *Credential
}

// New creates a store persisting credential in the supplied backend; call Load to restore a prior session
func New(backend Backend, options ...Option) Store {
	ret := &credentialStore{
		key:     DefaultKey,
		backend: backend,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// NewMemoryStore creates a non persistent store
func NewMemoryStore(options ...Option) Store {
	return New(NewMemoryBackend(), options...)
}

func (s *credentialStore) Load(ctx context.Context) error {
	data, err := s.backend.Get(ctx, s.key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load credential: %w", err)
	}
	credential := &Credential{}
	if err = json.Unmarshal(data, credential); err != nil {
		s.logger.Warn("discarding corrupt credential", zap.String("key", s.key), zap.Error(err))
		return nil
	}
	if !credential.IsComplete() {
		s.logger.Warn("discarding partial credential", zap.String("key", s.key))
		return nil
	}
	s.current = credential
	return nil
}

func (s *credentialStore) Credential() (*Credential, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.current.IsComplete() {
		return nil, false
	}
	return s.current.clone(), true
}

func (s *credentialStore) Save(ctx context.Context, update *Credential) error {
	if update == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	base := s.current
	if base == nil {
		base = &Credential{}
	}
	next := base.merge(update)
	data, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err = s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	s.current = next
	return nil
}

func (s *credentialStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if err := s.backend.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

type memoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func (m *memoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.data[key]; ok {
		return append([]byte(nil), data...), nil
	}
	return nil, ErrNotFound
}

func (m *memoryBackend) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *memoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// NewMemoryBackend creates an in-memory backend
func NewMemoryBackend() Backend {
	return &memoryBackend{data: map[string][]byte{}}
}
