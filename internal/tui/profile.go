package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/session"
)

// sessionChangedMsg reports the outcome of a logout or profile refresh.
type sessionChangedMsg struct {
	snap session.Snapshot
	err  error
}

// ProfileView shows the logged-in user's record with logout and
// refresh actions.
type ProfileView struct {
	busy bool
}

// NewProfileView creates the profile screen.
func NewProfileView() *ProfileView {
	return &ProfileView{}
}

func (v *ProfileView) Title() string { return "Profile" }

func (v *ProfileView) Init(env *Env) tea.Cmd { return nil }

func (v *ProfileView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		v.busy = false
		if msg.err != nil {
			return v, errorToast(msg.err)
		}
		if !msg.snap.IsLoggedIn() {
			return v, tea.Batch(
				ShowToast(ToastInfo, "Logged out"),
				Navigate("/"),
			)
		}
		return v, ShowToast(ToastSuccess, "Profile refreshed")

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "l":
			v.busy = true
			return v, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
				defer cancel()
				return sessionChangedMsg{snap: env.Session.Logout(ctx)}
			}
		case "r":
			v.busy = true
			return v, func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
				defer cancel()
				snap, err := env.Session.Refresh(ctx)
				return sessionChangedMsg{snap: snap, err: err}
			}
		}
	}
	return v, nil
}

func (v *ProfileView) View(env *Env) string {
	snap := env.snapshot()
	if !snap.IsLoggedIn() {
		return env.Styles.Muted.Render("Not logged in.")
	}

	var b strings.Builder
	b.WriteString(env.Styles.Title.Render("Profile"))
	b.WriteString("\n")

	user := snap.User
	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(env.Styles.Label.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(env.Styles.Value.Render(value))
		b.WriteString("\n")
	}
	row("Username", user.Username)
	row("Full name", user.FullName)
	row("Email", user.Email)
	row("Role", user.Role)
	row("Student ID", user.StudentID)
	row("Department", user.Department)
	row("Major", user.Major)
	row("Phone", user.Phone)

	b.WriteString("\n")
	if v.busy {
		b.WriteString(env.Styles.Muted.Render("Working..."))
	} else {
		b.WriteString(env.Styles.Help.Render("r refresh • l log out • esc back"))
	}
	return b.String()
}
