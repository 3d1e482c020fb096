package tui

import (
	"strconv"
	"strings"

	"github.com/Stuart-0728/cqnu/internal/session"
)

// Access is the minimum session level a route requires. Gating happens
// at resolution time, before any view is constructed, so a gated view
// never renders for an unauthorized session.
type Access int

const (
	// AccessPublic routes resolve for any session.
	AccessPublic Access = iota
	// AccessUser routes require a logged-in user.
	AccessUser
	// AccessAdmin routes require the admin role.
	AccessAdmin
)

// Params are the values bound to :name segments of a route pattern.
type Params map[string]string

// Int returns a numeric parameter, or 0 if absent or malformed.
func (p Params) Int(name string) int {
	n, err := strconv.Atoi(p[name])
	if err != nil {
		return 0
	}
	return n
}

// Route pairs a path pattern with its access level and view factory.
type Route struct {
	Pattern string
	Access  Access
	Build   func(params Params) View
}

// Resolution is the outcome of routing a path against a session.
type Resolution struct {
	View View
	// RedirectTo is set instead of View when the session cannot enter
	// the route: the login path for anonymous sessions, the denied
	// path for non-admins.
	RedirectTo string
	// Reason is a user-facing note explaining a redirect.
	Reason string
	// ReturnTo is the originally requested path, replayed after login.
	ReturnTo string
}

// Router matches paths against registered routes in order.
type Router struct {
	routes []Route

	// LoginPath and DeniedPath are where gated navigation lands.
	LoginPath  string
	DeniedPath string
}

// NewRouter creates a router with the standard redirect targets.
func NewRouter(routes []Route) *Router {
	return &Router{
		routes:     routes,
		LoginPath:  "/login",
		DeniedPath: "/denied",
	}
}

// Resolve matches path and enforces access for the given session. An
// unknown path resolves to nil View and empty RedirectTo; the caller
// renders not-found.
func (r *Router) Resolve(path string, snap session.Snapshot) Resolution {
	for _, route := range r.routes {
		params, ok := match(route.Pattern, path)
		if !ok {
			continue
		}

		switch route.Access {
		case AccessUser:
			if !snap.IsLoggedIn() {
				return Resolution{
					RedirectTo: r.LoginPath,
					Reason:     "Please log in first",
					ReturnTo:   path,
				}
			}
		case AccessAdmin:
			if !snap.IsLoggedIn() {
				return Resolution{
					RedirectTo: r.LoginPath,
					Reason:     "Please log in first",
					ReturnTo:   path,
				}
			}
			if !snap.IsAdmin() {
				return Resolution{
					RedirectTo: r.DeniedPath,
					Reason:     "Admin role required",
				}
			}
		}

		return Resolution{View: route.Build(params)}
	}

	return Resolution{}
}

// match binds a concrete path to a pattern with :name segments.
func match(pattern, path string) (Params, bool) {
	patParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patParts) != len(pathParts) {
		return nil, false
	}

	params := Params{}
	for i, part := range patParts {
		if strings.HasPrefix(part, ":") {
			if pathParts[i] == "" {
				return nil, false
			}
			params[part[1:]] = pathParts[i]
			continue
		}
		if part != pathParts[i] {
			return nil, false
		}
	}
	return params, true
}
