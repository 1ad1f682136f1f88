package mock

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

type credentials struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	DisplayName  string `json:"display_name"`
	RefreshToken string `json:"refresh_token"`
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeDetail(w http.ResponseWriter, status int, detail interface{}) {
	writeJSON(w, status, map[string]interface{}{"detail": detail})
}

func upstreamError(message string) map[string]interface{} {
	return map[string]interface{}{"error": map[string]interface{}{"code": 400, "message": message}}
}

func (m *Service) grant(w http.ResponseWriter, u *user, refreshToken string, status int) {
	idToken, err := m.createJWT(u.UID)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	response := map[string]interface{}{
		"uid":      u.UID,
		"id_token": idToken,
		"email":    u.Email,
	}
	if u.DisplayName != "" {
		response["display_name"] = u.DisplayName
	}
	if refreshToken != "" {
		response["refresh_token"] = refreshToken
	}
	writeJSON(w, status, response)
}

func (m *Service) issueRefreshToken(uid string) string {
	token := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshTokens[token] = uid
	return token
}

func (m *Service) defaultSignupHandler(w http.ResponseWriter, r *http.Request) {
	input := &credentials{}
	if err := json.NewDecoder(r.Body).Decode(input); err != nil || input.Email == "" || input.Password == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}
	m.mu.Lock()
	if _, ok := m.users[input.Email]; ok {
		m.mu.Unlock()
		writeDetail(w, http.StatusBadRequest, upstreamError("EMAIL_EXISTS"))
		return
	}
	u := &user{UID: uuid.NewString(), Email: input.Email, Password: input.Password, DisplayName: input.DisplayName}
	m.users[input.Email] = u
	m.mu.Unlock()
	m.grant(w, u, m.issueRefreshToken(u.UID), http.StatusOK)
}

func (m *Service) defaultLoginHandler(w http.ResponseWriter, r *http.Request) {
	input := &credentials{}
	if err := json.NewDecoder(r.Body).Decode(input); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid payload")
		return
	}
	m.mu.Lock()
	u, ok := m.users[input.Email]
	m.mu.Unlock()
	if !ok || u.Password != input.Password {
		writeDetail(w, http.StatusBadRequest, upstreamError("INVALID_LOGIN_CREDENTIALS"))
		return
	}
	m.grant(w, u, m.issueRefreshToken(u.UID), http.StatusOK)
}

func (m *Service) defaultRefreshHandler(w http.ResponseWriter, r *http.Request) {
	input := &credentials{}
	if err := json.NewDecoder(r.Body).Decode(input); err != nil || input.RefreshToken == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "refresh_token is required")
		return
	}
	m.mu.Lock()
	uid, ok := m.refreshTokens[input.RefreshToken]
	rotate := m.RotateRefreshTokens
	if ok && rotate {
		delete(m.refreshTokens, input.RefreshToken)
	}
	m.mu.Unlock()
	if !ok {
		writeDetail(w, http.StatusBadRequest, upstreamError("INVALID_REFRESH_TOKEN"))
		return
	}
	idToken, err := m.createJWT(uid)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	response := map[string]interface{}{"uid": uid, "id_token": idToken}
	if rotate {
		response["refresh_token"] = m.issueRefreshToken(uid)
	}
	if m.ExpiresIn > 0 {
		response["expires_in"] = m.ExpiresIn
	}
	writeJSON(w, http.StatusOK, response)
}

func (m *Service) meHandler(w http.ResponseWriter, r *http.Request, uid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.UID == uid {
			writeJSON(w, http.StatusOK, map[string]interface{}{"uid": uid, "email": u.Email, "display_name": u.DisplayName})
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Not found")
}
