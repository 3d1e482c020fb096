package tui

import (
	"testing"

	"github.com/Stuart-0728/cqnu/internal/api"
	"github.com/Stuart-0728/cqnu/internal/session"
)

func testRoutes() []Route {
	build := func(Params) View { return NewHomeView() }
	return []Route{
		{Pattern: "/", Access: AccessPublic, Build: build},
		{Pattern: "/login", Access: AccessPublic, Build: build},
		{Pattern: "/denied", Access: AccessPublic, Build: build},
		{Pattern: "/activities", Access: AccessPublic, Build: build},
		{Pattern: "/activities/:id", Access: AccessPublic, Build: func(p Params) View {
			return NewActivityDetailView(p.Int("id"))
		}},
		{Pattern: "/registrations", Access: AccessUser, Build: build},
		{Pattern: "/admin", Access: AccessAdmin, Build: build},
		{Pattern: "/admin/activities/:id/edit", Access: AccessAdmin, Build: build},
	}
}

func anonymous() session.Snapshot {
	return session.Snapshot{Phase: session.PhaseAnonymous, Generation: 1}
}

func loggedIn(role string) session.Snapshot {
	return session.Snapshot{
		Phase:      session.PhaseAuthenticated,
		User:       &api.User{ID: 1, Username: "alice", Role: role},
		Generation: 2,
	}
}

func TestRouterPublicRoute(t *testing.T) {
	r := NewRouter(testRoutes())

	res := r.Resolve("/activities", anonymous())
	if res.View == nil {
		t.Fatal("public route should resolve for anonymous session")
	}
	if res.RedirectTo != "" {
		t.Errorf("unexpected redirect %q", res.RedirectTo)
	}
}

func TestRouterParamBinding(t *testing.T) {
	r := NewRouter(testRoutes())

	res := r.Resolve("/activities/42", anonymous())
	if res.View == nil {
		t.Fatal("parameterized route should resolve")
	}
	detail, ok := res.View.(*ActivityDetailView)
	if !ok {
		t.Fatalf("expected detail view, got %T", res.View)
	}
	if detail.id != 42 {
		t.Errorf("expected id 42, got %d", detail.id)
	}
}

func TestRouterUserGateRedirectsAnonymousToLogin(t *testing.T) {
	r := NewRouter(testRoutes())

	res := r.Resolve("/registrations", anonymous())
	if res.View != nil {
		t.Fatal("gated route must not build a view for anonymous session")
	}
	if res.RedirectTo != "/login" {
		t.Errorf("expected redirect to /login, got %q", res.RedirectTo)
	}
	if res.ReturnTo != "/registrations" {
		t.Errorf("expected return path /registrations, got %q", res.ReturnTo)
	}
	if res.Reason == "" {
		t.Error("expected a user-facing reason")
	}
}

func TestRouterUserGateAllowsLoggedIn(t *testing.T) {
	r := NewRouter(testRoutes())

	res := r.Resolve("/registrations", loggedIn(api.RoleUser))
	if res.View == nil {
		t.Fatal("logged-in user should pass the user gate")
	}
}

func TestRouterAdminGate(t *testing.T) {
	r := NewRouter(testRoutes())

	tests := []struct {
		name     string
		snap     session.Snapshot
		path     string
		wantView bool
		redirect string
	}{
		{"anonymous goes to login", anonymous(), "/admin", false, "/login"},
		{"plain user is denied", loggedIn(api.RoleUser), "/admin", false, "/denied"},
		{"admin passes", loggedIn(api.RoleAdmin), "/admin", true, ""},
		{"nested admin route denied", loggedIn(api.RoleUser), "/admin/activities/3/edit", false, "/denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Resolve(tt.path, tt.snap)
			if (res.View != nil) != tt.wantView {
				t.Errorf("view presence = %v, want %v", res.View != nil, tt.wantView)
			}
			if res.RedirectTo != tt.redirect {
				t.Errorf("redirect = %q, want %q", res.RedirectTo, tt.redirect)
			}
		})
	}
}

func TestRouterUnknownPath(t *testing.T) {
	r := NewRouter(testRoutes())

	res := r.Resolve("/no/such/page", loggedIn(api.RoleAdmin))
	if res.View != nil || res.RedirectTo != "" {
		t.Error("unknown path should resolve to nothing")
	}
}

func TestMatchPatterns(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		ok      bool
		params  map[string]string
	}{
		{"/", "/", true, map[string]string{}},
		{"/activities", "/activities", true, map[string]string{}},
		{"/activities", "/activities/7", false, nil},
		{"/activities/:id", "/activities/7", true, map[string]string{"id": "7"}},
		{"/activities/:id", "/activities", false, nil},
		{"/admin/activities/:id/edit", "/admin/activities/9/edit", true, map[string]string{"id": "9"}},
		{"/admin/activities/:id/edit", "/admin/activities/9/delete", false, nil},
	}

	for _, tt := range tests {
		params, ok := match(tt.pattern, tt.path)
		if ok != tt.ok {
			t.Errorf("match(%q, %q) = %v, want %v", tt.pattern, tt.path, ok, tt.ok)
			continue
		}
		for k, want := range tt.params {
			if params[k] != want {
				t.Errorf("match(%q, %q) param %q = %q, want %q", tt.pattern, tt.path, k, params[k], want)
			}
		}
	}
}

func TestParamsIntMalformed(t *testing.T) {
	p := Params{"id": "abc"}
	if p.Int("id") != 0 {
		t.Error("malformed int param should bind to 0")
	}
	if p.Int("missing") != 0 {
		t.Error("missing param should bind to 0")
	}
}
