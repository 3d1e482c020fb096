package tui

import (
	"testing"

	"github.com/Stuart-0728/cqnu/internal/api"
	"github.com/Stuart-0728/cqnu/internal/session"
)

func TestLoginDestination(t *testing.T) {
	member := session.Snapshot{Phase: session.PhaseAuthenticated, User: &api.User{Role: api.RoleUser}}
	admin := session.Snapshot{Phase: session.PhaseAuthenticated, User: &api.User{Role: api.RoleAdmin}}

	tests := []struct {
		name     string
		returnTo string
		snap     session.Snapshot
		want     string
	}{
		{"member lands home", "", member, "/"},
		{"admin lands on dashboard", "", admin, "/admin"},
		{"gated path replays for member", "/registrations", member, "/registrations"},
		{"gated path replays for admin", "/admin/users", admin, "/admin/users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loginDestination(tt.returnTo, tt.snap); got != tt.want {
				t.Errorf("loginDestination(%q) = %q, want %q", tt.returnTo, got, tt.want)
			}
		})
	}
}
