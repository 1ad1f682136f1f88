package mock

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, url string, payload interface{}) (int, map[string]interface{}) {
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	response, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer response.Body.Close()
	ret := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&ret))
	return response.StatusCode, ret
}

func get(t *testing.T, url, token string) int {
	request, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	request.Header.Set("Authorization", "Bearer "+token)
	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	_ = response.Body.Close()
	return response.StatusCode
}

func TestService(t *testing.T) {
	server, err := NewHTTPTestServer()
	require.NoError(t, err)
	defer server.Close()
	server.RotateRefreshTokens = true

	status, grant := post(t, server.URL+"/auth/signup", map[string]string{"email": "ada@example.com", "password": "pw", "display_name": "Ada"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Ada", grant["display_name"])

	status, body := post(t, server.URL+"/auth/signup", map[string]string{"email": "ada@example.com", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "detail")

	status, _ = post(t, server.URL+"/auth/login", map[string]string{"email": "ada@example.com", "password": "bad"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, grant = post(t, server.URL+"/auth/login", map[string]string{"email": "ada@example.com", "password": "pw"})
	require.Equal(t, http.StatusOK, status)
	token := grant["id_token"].(string)
	refreshToken := grant["refresh_token"].(string)
	assert.Equal(t, http.StatusOK, get(t, server.URL+"/auth/me", token))
	assert.Equal(t, http.StatusOK, get(t, server.URL+"/transcripts", token))

	server.Revoke()
	assert.Equal(t, http.StatusUnauthorized, get(t, server.URL+"/transcripts", token))

	status, renewed := post(t, server.URL+"/auth/refresh", map[string]string{"refresh_token": refreshToken})
	require.Equal(t, http.StatusOK, status)
	assert.NotEqual(t, refreshToken, renewed["refresh_token"])
	assert.Equal(t, http.StatusOK, get(t, server.URL+"/transcripts", renewed["id_token"].(string)))

	status, _ = post(t, server.URL+"/auth/refresh", map[string]string{"refresh_token": refreshToken})
	assert.Equal(t, http.StatusBadRequest, status)

	assert.Equal(t, 2, server.Calls("POST /auth/refresh"))
	assert.Equal(t, 3, server.Calls("GET /transcripts"))
}
