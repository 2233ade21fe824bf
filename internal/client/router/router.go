// Package router maps navigation paths to screens and applies the auth
// guard to protected ones.
package router

import (
	"strings"

	"github.com/dmitrijs2005/onboard/internal/client/session"
)

// Route is a navigation path.
type Route string

const (
	Root           Route = "/"
	Signup         Route = "/signup"
	VerifyEmail    Route = "/verify-email"
	Login          Route = "/login"
	Interests      Route = "/interests"
	ForgotPassword Route = "/forgot-password"
	ResetPassword  Route = "/reset-password"
	NotFound       Route = "*"
)

// Outcome of a guard or route resolution.
type Outcome int

const (
	Allow Outcome = iota
	Redirect
	Missing
)

// Decision is what the guard says about a protected route.
type Decision struct {
	Outcome Outcome
	Target  Route
}

// Guard decides whether a protected screen may be shown in state.
// Verification in progress wins over everything else; without a session
// the user is sent to login.
func Guard(state session.State) Decision {
	switch state {
	case session.Authenticated:
		return Decision{Outcome: Allow}
	case session.PendingVerification:
		return Decision{Outcome: Redirect, Target: VerifyEmail}
	default:
		return Decision{Outcome: Redirect, Target: Login}
	}
}

type entry struct {
	guarded  bool
	redirect Route
}

// Router resolves paths against a fixed table.
type Router struct {
	routes map[Route]entry
}

func New() *Router {
	return &Router{routes: map[Route]entry{
		Root:           {redirect: Signup},
		Signup:         {},
		VerifyEmail:    {},
		Login:          {},
		Interests:      {guarded: true},
		ForgotPassword: {},
		ResetPassword:  {},
	}}
}

// Resolution is the screen to show for a requested path. Redirected is set
// when Route differs from what was asked for.
type Resolution struct {
	Route      Route
	Redirected bool
	Query      string
}

// Normalize trims whitespace, drops a trailing slash and splits off the
// query string.
func Normalize(path string) (Route, string) {
	path = strings.TrimSpace(path)
	var query string
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, query = path[:i], path[i+1:]
	}
	if path == "" {
		return Root, query
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return Route(path), query
}

// Resolve looks up path and applies redirects and the guard. The guard is
// consulted on every call, so a state change is picked up on the next
// navigation.
func (r *Router) Resolve(path string, state session.State) Resolution {
	route, query := Normalize(path)

	e, ok := r.routes[route]
	if !ok {
		return Resolution{Route: NotFound, Query: query}
	}
	if e.redirect != "" {
		return Resolution{Route: e.redirect, Redirected: true, Query: query}
	}
	if e.guarded {
		if d := Guard(state); d.Outcome == Redirect {
			return Resolution{Route: d.Target, Redirected: true}
		}
	}
	return Resolution{Route: route, Query: query}
}

// Routes lists the navigable paths in a stable order.
func (r *Router) Routes() []Route {
	return []Route{Signup, VerifyEmail, Login, Interests, ForgotPassword, ResetPassword}
}
