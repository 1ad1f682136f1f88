// Package guard decides whether a presentation layer may enter a route given the session state.
package guard

import (
	"net/http"
	"net/url"
)

// Session reports whether a user is signed in
type Session interface {
	IsLoggedIn() bool
}

// Route describes navigation target
type Route struct {
	Name         string
	Path         string
	RequiresAuth bool
	// Guest routes (login, signup) are only meant for signed out users
	Guest bool
}

// Decision is navigation outcome
type Decision struct {
	Allow    bool
	Redirect string
}

// Guard checks routes against session
type Guard struct {
	session   Session
	loginPath string
	appPath   string
}

// RedirectParam carries the originally intended destination to the login route
const RedirectParam = "redirect"

// Check returns navigation decision for route; intended is the destination the user asked for
func (g *Guard) Check(route *Route, intended string) Decision {
	loggedIn := g.session.IsLoggedIn()
	if route.RequiresAuth && !loggedIn {
		target := g.loginPath
		if intended != "" {
			target += "?" + url.Values{RedirectParam: {intended}}.Encode()
		}
		return Decision{Redirect: target}
	}
	if route.Guest && loggedIn {
		return Decision{Redirect: g.appPath}
	}
	return Decision{Allow: true}
}

// Middleware guards an http handler serving route
func (g *Guard) Middleware(route *Route, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decision := g.Check(route, r.URL.RequestURI())
		if !decision.Allow {
			http.Redirect(w, r, decision.Redirect, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// New creates a guard redirecting to loginPath and appPath
func New(session Session, loginPath, appPath string) *Guard {
	return &Guard{session: session, loginPath: loginPath, appPath: appPath}
}
