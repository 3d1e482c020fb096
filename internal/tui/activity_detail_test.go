package tui

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
)

func activityJSON(id int, title string) string {
	return fmt.Sprintf(`{"success":true,"activity":{"id":%d,"title":%q,"status":"active"}}`, id, title)
}

// A completion from a view that has since been replaced must not land
// in its successor, even though both ran under the same session.
func TestLateFetchFromReplacedViewIsDiscarded(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/activities/5":
			fmt.Fprint(w, activityJSON(5, "Old Lecture"))
		case "/api/activities/7":
			fmt.Fprint(w, activityJSON(7, "New Hike"))
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	})

	first := NewActivityDetailView(5)
	lateMsg := first.load(env)()

	second := NewActivityDetailView(7)
	second.Update(env, second.load(env)())
	if second.data.activity.Title != "New Hike" {
		t.Fatalf("title = %q, want New Hike", second.data.activity.Title)
	}

	// The old view's fetch completes only now.
	second.Update(env, lateMsg)
	if second.data.activity.Title != "New Hike" {
		t.Errorf("late completion overwrote the view: title = %q", second.data.activity.Title)
	}
	if second.loading {
		t.Error("late completion flipped the view back to loading")
	}
}

func TestSignUpOnClosedActivityStaysLocal(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "register") {
			t.Errorf("sign-up on a closed activity reached the server: %s", r.URL.Path)
			return
		}
		loginHandler(w, r)
	})
	if _, err := env.Session.Login(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	v := NewActivityDetailView(7)
	v.data = detailData{activity: api.Activity{
		ID:     7,
		Title:  "Hiking",
		Status: api.ActivityStatusCompleted,
	}}

	_, cmd := v.Update(env, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if cmd == nil {
		t.Fatal("expected a toast command")
	}
	toast, ok := cmd().(ShowToastMsg)
	if !ok {
		t.Fatalf("expected a toast, got %T", cmd())
	}
	if toast.Kind != ToastWarning {
		t.Errorf("toast kind = %v, want warning", toast.Kind)
	}
	if v.acting {
		t.Error("refused sign-up must not mark the view busy")
	}
}

func TestDetailFetchFailureRendersError(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"success":false,"message":"activity not found"}`)
	})

	v := NewActivityDetailView(99)
	v.Update(env, v.load(env)())

	if v.loadErr == nil {
		t.Fatal("fetch failure must be recorded")
	}
	out := v.View(env)
	if !strings.Contains(out, "Could not load activity") {
		t.Errorf("error state not rendered:\n%s", out)
	}
	if !strings.Contains(out, "r retry") {
		t.Errorf("retry hint missing:\n%s", out)
	}
}

func TestFullActivityRefusedBeforeNetwork(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "register") {
			t.Errorf("sign-up on a full activity reached the server: %s", r.URL.Path)
			return
		}
		loginHandler(w, r)
	})
	if _, err := env.Session.Login(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	v := NewActivityDetailView(7)
	v.data = detailData{activity: api.Activity{
		ID:              7,
		Title:           "Hiking",
		Status:          api.ActivityStatusActive,
		StartTime:       time.Now().Add(24 * time.Hour),
		MaxParticipants: 10,
		RegisteredCount: 10,
	}}

	_, cmd := v.Update(env, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if cmd == nil {
		t.Fatal("expected a toast command")
	}
	if toast, ok := cmd().(ShowToastMsg); !ok || toast.Kind != ToastWarning {
		t.Errorf("expected a warning toast, got %#v", cmd())
	}
}
