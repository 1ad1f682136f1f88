package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/transcript/client/auth/renewal"
	"github.com/viant/transcript/client/auth/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAPI struct {
	mu           sync.Mutex
	t            *testing.T
	renewals     int
	primary      int
	renewStatus  int
	primaryCodes []int
	nextToken    string
	tokens       []string
	bodies       []string
	requestIDs   []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.URL.Path == renewal.Path {
		f.renewals++
		assert.Empty(f.t, r.Header.Get("Authorization"))
		if f.renewStatus != 0 && f.renewStatus != http.StatusOK {
			w.WriteHeader(f.renewStatus)
			return
		}
		_, _ = w.Write([]byte(`{"uid":"u1","id_token":"` + f.nextToken + `"}`))
		return
	}
	f.primary++
	f.tokens = append(f.tokens, strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	f.requestIDs = append(f.requestIDs, r.Header.Get(RequestIDHeader))
	data, _ := io.ReadAll(r.Body)
	f.bodies = append(f.bodies, string(data))
	code := http.StatusOK
	if len(f.primaryCodes) >= f.primary {
		code = f.primaryCodes[f.primary-1]
	}
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{}`))
}

func mint(t *testing.T, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func newClient(t *testing.T, api *fakeAPI, credential *store.Credential) (*http.Client, *RoundTripper, store.Store, string) {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)
	s := store.NewMemoryStore()
	if credential != nil {
		require.NoError(t, s.Save(context.Background(), credential))
	}
	rt, err := New(WithStore(s), WithRenewer(renewal.New(server.URL, s)))
	require.NoError(t, err)
	return &http.Client{Transport: rt}, rt, s, server.URL
}

func TestRoundTripper_RoundTrip(t *testing.T) {
	now := time.Now()
	freshToken := mint(t, now.Add(time.Hour))
	renewedToken := mint(t, now.Add(2*time.Hour))
	fresh := &store.Credential{AccessToken: freshToken, RefreshToken: "r1", UserID: "u1", ExpiresAtMs: now.Add(time.Hour).UnixMilli()}
	expired := &store.Credential{AccessToken: "expired", RefreshToken: "r1", UserID: "u1", ExpiresAtMs: now.Add(-time.Second).UnixMilli()}

	var testCases = []struct {
		description    string
		credential     *store.Credential
		primaryCodes   []int
		expectStatus   int
		expectPrimary  int
		expectRenewals int
		expectTokens   []string
	}{
		{
			description:    "fresh credential",
			credential:     fresh,
			expectStatus:   http.StatusOK,
			expectPrimary:  1,
			expectRenewals: 0,
			expectTokens:   []string{freshToken},
		},
		{
			description:    "expired credential renewed before sending",
			credential:     expired,
			expectStatus:   http.StatusOK,
			expectPrimary:  1,
			expectRenewals: 1,
			expectTokens:   []string{renewedToken},
		},
		{
			description:    "401 renewed and resent once",
			credential:     fresh,
			primaryCodes:   []int{http.StatusUnauthorized, http.StatusOK},
			expectStatus:   http.StatusOK,
			expectPrimary:  2,
			expectRenewals: 1,
			expectTokens:   []string{freshToken, renewedToken},
		},
		{
			description:    "second 401 returned as is",
			credential:     fresh,
			primaryCodes:   []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusOK},
			expectStatus:   http.StatusUnauthorized,
			expectPrimary:  2,
			expectRenewals: 1,
			expectTokens:   []string{freshToken, renewedToken},
		},
		{
			description:    "other failures not retried",
			credential:     fresh,
			primaryCodes:   []int{http.StatusForbidden},
			expectStatus:   http.StatusForbidden,
			expectPrimary:  1,
			expectRenewals: 0,
			expectTokens:   []string{freshToken},
		},
	}

	for _, testCase := range testCases {
		api := &fakeAPI{t: t, primaryCodes: testCase.primaryCodes, nextToken: renewedToken}
		client, _, _, baseURL := newClient(t, api, testCase.credential)
		request, err := http.NewRequest(http.MethodPost, baseURL+"/transcripts", strings.NewReader(`{"text":"hi"}`))
		require.NoError(t, err)
		response, err := client.Do(request)
		require.NoError(t, err, testCase.description)
		_ = response.Body.Close()

		assert.Equal(t, testCase.expectStatus, response.StatusCode, testCase.description)
		assert.Equal(t, testCase.expectPrimary, api.primary, testCase.description)
		assert.Equal(t, testCase.expectRenewals, api.renewals, testCase.description)
		assert.Equal(t, testCase.expectTokens, api.tokens, testCase.description)
		for _, body := range api.bodies {
			assert.Equal(t, `{"text":"hi"}`, body, testCase.description)
		}
		for _, id := range api.requestIDs {
			assert.Equal(t, api.requestIDs[0], id, testCase.description)
			assert.NotEmpty(t, id, testCase.description)
		}
	}
}

func TestRoundTripper_NotAuthenticated(t *testing.T) {
	api := &fakeAPI{t: t}
	client, _, _, baseURL := newClient(t, api, nil)
	_, err := client.Get(baseURL + "/transcripts")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 0, api.primary)
	assert.Equal(t, 0, api.renewals)
}

func TestRoundTripper_WithoutAuth(t *testing.T) {
	api := &fakeAPI{t: t}
	client, _, _, baseURL := newClient(t, api, nil)
	request, err := http.NewRequestWithContext(WithoutAuth(context.Background()), http.MethodGet, baseURL+"/health", nil)
	require.NoError(t, err)
	response, err := client.Do(request)
	require.NoError(t, err)
	_ = response.Body.Close()
	assert.Equal(t, 1, api.primary)
	assert.Equal(t, []string{""}, api.tokens)
}

func TestRoundTripper_RenewalFailure(t *testing.T) {
	expired := &store.Credential{AccessToken: "expired", RefreshToken: "r1", UserID: "u1", ExpiresAtMs: time.Now().Add(-time.Second).UnixMilli()}
	api := &fakeAPI{t: t, renewStatus: http.StatusBadRequest}
	client, _, s, baseURL := newClient(t, api, expired)
	_, err := client.Get(baseURL + "/transcripts")
	assert.ErrorIs(t, err, renewal.ErrSessionExpired)
	assert.Equal(t, 0, api.primary)
	assert.Equal(t, 1, api.renewals)
	_, ok := s.Credential()
	assert.False(t, ok)

	_, err = client.Get(baseURL + "/transcripts")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 1, api.renewals)
}

func TestRoundTripper_TokenSource(t *testing.T) {
	renewedToken := mint(t, time.Now().Add(time.Hour))
	expired := &store.Credential{AccessToken: "expired", RefreshToken: "r1", UserID: "u1", ExpiresAtMs: time.Now().Add(-time.Second).UnixMilli()}
	api := &fakeAPI{t: t, nextToken: renewedToken}
	_, rt, _, _ := newClient(t, api, expired)
	token, err := rt.TokenSource(context.Background()).Token()
	require.NoError(t, err)
	assert.Equal(t, renewedToken, token.AccessToken)
	assert.Equal(t, "r1", token.RefreshToken)
	assert.True(t, token.Valid())
	assert.Equal(t, 1, api.renewals)
}

func TestRoundTripper_LogsState(t *testing.T) {
	now := time.Now()
	api := &fakeAPI{t: t, nextToken: mint(t, now.Add(2*time.Hour)), primaryCodes: []int{http.StatusUnauthorized, http.StatusOK}}
	server := httptest.NewServer(api)
	defer server.Close()
	s := store.NewMemoryStore()
	require.NoError(t, s.Save(context.Background(), &store.Credential{AccessToken: "expired", RefreshToken: "r1", UserID: "u1", ExpiresAtMs: now.Add(-time.Second).UnixMilli()}))
	core, logs := observer.New(zap.DebugLevel)
	rt, err := New(WithStore(s), WithRenewer(renewal.New(server.URL, s)), WithLogger(zap.New(core)))
	require.NoError(t, err)

	response, err := (&http.Client{Transport: rt}).Get(server.URL + "/transcripts")
	require.NoError(t, err)
	_ = response.Body.Close()
	assert.Equal(t, http.StatusOK, response.StatusCode)

	var states []string
	for _, entry := range logs.All() {
		if state, ok := entry.ContextMap()["state"]; ok {
			states = append(states, state.(string))
		}
	}
	assert.Equal(t, []string{"renewing", "retryingAfter401"}, states)
}
