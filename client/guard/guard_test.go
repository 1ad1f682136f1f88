package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type session bool

func (s session) IsLoggedIn() bool { return bool(s) }

func TestGuard_Check(t *testing.T) {
	app := &Route{Name: "app", Path: "/app", RequiresAuth: true}
	login := &Route{Name: "login", Path: "/login", Guest: true}
	landing := &Route{Name: "landing", Path: "/"}

	var testCases = []struct {
		description string
		loggedIn    bool
		route       *Route
		intended    string
		expect      Decision
	}{
		{description: "protected route signed out", route: app, intended: "/app?tab=2", expect: Decision{Redirect: "/login?redirect=%2Fapp%3Ftab%3D2"}},
		{description: "protected route signed in", loggedIn: true, route: app, intended: "/app", expect: Decision{Allow: true}},
		{description: "guest route signed in", loggedIn: true, route: login, expect: Decision{Redirect: "/app"}},
		{description: "guest route signed out", route: login, expect: Decision{Allow: true}},
		{description: "public route", route: landing, expect: Decision{Allow: true}},
	}
	for _, testCase := range testCases {
		g := New(session(testCase.loggedIn), "/login", "/app")
		assert.Equal(t, testCase.expect, g.Check(testCase.route, testCase.intended), testCase.description)
	}
}

func TestGuard_Middleware(t *testing.T) {
	g := New(session(false), "/login", "/app")
	handler := g.Middleware(&Route{Path: "/app", RequiresAuth: true}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/login?redirect=%2Fapp", recorder.Header().Get("Location"))
}
