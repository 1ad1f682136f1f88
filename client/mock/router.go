package mock

import (
	"net/http"
	"strings"
)

// Handler routes HTTP requests to the mock service endpoints.
type Handler struct {
	Service *Service
}

// ServeHTTP dispatches incoming HTTP requests based on URL path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s := h.Service
	s.count(r.Method + " " + r.URL.Path)
	switch r.URL.Path {
	case "/auth/signup":
		if s.SignupHandler != nil {
			s.SignupHandler(w, r)
		} else {
			s.defaultSignupHandler(w, r)
		}
		return
	case "/auth/login":
		if s.LoginHandler != nil {
			s.LoginHandler(w, r)
		} else {
			s.defaultLoginHandler(w, r)
		}
		return
	case "/auth/refresh":
		if s.RefreshHandler != nil {
			s.RefreshHandler(w, r)
		} else {
			s.defaultRefreshHandler(w, r)
		}
		return
	}

	uid, err := s.authenticate(r)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}
	switch path := r.URL.Path; {
	case path == "/auth/me":
		s.meHandler(w, r, uid)
	case path == "/transcripts" && r.Method == http.MethodGet:
		s.listTranscripts(w, uid)
	case path == "/transcripts" && r.Method == http.MethodPost:
		s.createTranscript(w, r, uid)
	case path == "/transcripts/transcribe" && r.Method == http.MethodPost:
		s.transcribe(w, r, uid)
	case strings.HasPrefix(path, "/transcripts/"):
		s.transcript(w, r, uid, strings.TrimPrefix(path, "/transcripts/"))
	default:
		http.NotFound(w, r)
	}
}
