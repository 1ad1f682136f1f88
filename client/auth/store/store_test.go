package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func complete() *Credential {
	return &Credential{AccessToken: "a1", RefreshToken: "r1", UserID: "u1", ExpiresAtMs: 1000}
}

func TestStore_Save(t *testing.T) {
	var testCases = []struct {
		description string
		initial     *Credential
		update      *Credential
		expect      *Credential
	}{
		{
			description: "seed empty store",
			update:      complete(),
			expect:      complete(),
		},
		{
			description: "access token replaces expiry",
			initial:     complete(),
			update:      &Credential{AccessToken: "a2"},
			expect:      &Credential{AccessToken: "a2", RefreshToken: "r1", UserID: "u1"},
		},
		{
			description: "empty refresh token keeps prior one",
			initial:     complete(),
			update:      &Credential{AccessToken: "a2", UserID: "u2", ExpiresAtMs: 2000},
			expect:      &Credential{AccessToken: "a2", RefreshToken: "r1", UserID: "u2", ExpiresAtMs: 2000},
		},
	}

	for _, testCase := range testCases {
		ctx := context.Background()
		s := NewMemoryStore()
		if testCase.initial != nil {
			require.NoError(t, s.Save(ctx, testCase.initial), testCase.description)
		}
		require.NoError(t, s.Save(ctx, testCase.update), testCase.description)
		actual, ok := s.Credential()
		assert.True(t, ok, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestStore_Load(t *testing.T) {
	var testCases = []struct {
		description string
		blob        string
		expectOk    bool
	}{
		{description: "valid blob", blob: `{"idToken":"a","refreshToken":"r","uid":"u","expMs":5}`, expectOk: true},
		{description: "corrupt blob", blob: `{"idToken":`},
		{description: "partial blob", blob: `{"idToken":"a","uid":"u"}`},
		{description: "not an object", blob: `"oops"`},
	}
	for _, testCase := range testCases {
		ctx := context.Background()
		backend := NewMemoryBackend()
		require.NoError(t, backend.Put(ctx, DefaultKey, []byte(testCase.blob)))
		s := New(backend)
		assert.NoError(t, s.Load(ctx), testCase.description)
		_, ok := s.Credential()
		assert.Equal(t, testCase.expectOk, ok, testCase.description)
	}
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	s := New(backend)
	require.NoError(t, s.Save(ctx, complete()))
	require.NoError(t, s.Clear(ctx))
	_, ok := s.Credential()
	assert.False(t, ok)
	_, err := backend.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Clear(ctx))
}

type failingBackend struct {
	Backend
}

func (f *failingBackend) Put(ctx context.Context, key string, data []byte) error {
	return errors.New("disk full")
}

func TestStore_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	backend := &failingBackend{Backend: NewMemoryBackend()}
	s := New(backend)
	err := s.Save(ctx, complete())
	assert.Error(t, err)
	_, ok := s.Credential()
	assert.False(t, ok)
}

func TestFileBackend(t *testing.T) {
	ctx := context.Background()
	baseURL := filepath.Join(t.TempDir(), "session")
	s := New(NewFileBackend(baseURL))
	require.NoError(t, s.Load(ctx))
	_, ok := s.Credential()
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, complete()))
	backend := NewFileBackend(baseURL)
	object, err := afs.New().Object(ctx, backend.URL(DefaultKey))
	require.NoError(t, err)
	assert.False(t, object.IsDir())
	require.NoError(t, s.Save(ctx, &Credential{RefreshToken: "r2"}))

	restored := New(NewFileBackend(baseURL))
	require.NoError(t, restored.Load(ctx))
	actual, ok := restored.Credential()
	assert.True(t, ok)
	expect := complete()
	expect.RefreshToken = "r2"
	assert.EqualValues(t, expect, actual)

	require.NoError(t, restored.Clear(ctx))
	again := New(NewFileBackend(baseURL))
	require.NoError(t, again.Load(ctx))
	_, ok = again.Credential()
	assert.False(t, ok)
}

func TestRedisBackend(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	s := New(NewRedisBackend(client, "transcript"))
	require.NoError(t, s.Save(ctx, complete()))
	assert.True(t, mr.Exists("transcript:"+DefaultKey))

	restored := New(NewRedisBackend(client, "transcript"))
	require.NoError(t, restored.Load(ctx))
	actual, ok := restored.Credential()
	assert.True(t, ok)
	assert.Equal(t, "a1", actual.AccessToken)

	require.NoError(t, restored.Clear(ctx))
	assert.False(t, mr.Exists("transcript:"+DefaultKey))
}
