package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
)

// UsersView is the admin user list with role promotion/demotion.
type UsersView struct {
	users   []api.DashboardUser
	loading bool
	loadErr error
	acting  bool
	cursor  int
	seq     uint64
}

// NewUsersView creates the user management screen.
func NewUsersView() *UsersView {
	return &UsersView{}
}

func (v *UsersView) Title() string { return "Users" }

func (v *UsersView) Init(env *Env) tea.Cmd {
	return v.load(env)
}

func (v *UsersView) load(env *Env) tea.Cmd {
	v.seq = nextFetchSeq()
	v.loading = true
	v.loadErr = nil
	return fetch(env, v.seq, func(ctx context.Context) (interface{}, error) {
		return env.Client.DashboardUsers(ctx, "")
	})
}

func (v *UsersView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		if env.stale(msg, v.seq) {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.loadErr = msg.err
			return v, errorToast(msg.err)
		}
		if users, ok := msg.data.([]api.DashboardUser); ok {
			v.users = users
		}
		if v.cursor >= len(v.users) {
			v.cursor = 0
		}
		return v, nil

	case actionMsg:
		v.acting = false
		if msg.gen != env.Session.Generation() {
			return v, nil
		}
		if msg.err != nil {
			return v, errorToast(msg.err)
		}
		return v, tea.Batch(ShowToast(ToastSuccess, msg.success), v.load(env))

	case tea.KeyMsg:
		if v.loading || v.acting {
			return v, nil
		}
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.users)-1 {
				v.cursor++
			}
		case "t":
			return v.toggleRole(env)
		case "r":
			return v, v.load(env)
		}
	}
	return v, nil
}

// toggleRole flips the selected user between user and admin. Admins
// cannot demote themselves; the last admin lock is enforced server-side.
func (v *UsersView) toggleRole(env *Env) (View, tea.Cmd) {
	if v.cursor >= len(v.users) {
		return v, nil
	}
	target := v.users[v.cursor]

	snap := env.snapshot()
	if snap.User != nil && snap.User.ID == target.ID {
		return v, ShowToast(ToastWarning, "You cannot change your own role")
	}

	newRole := api.RoleAdmin
	if target.Role == api.RoleAdmin {
		newRole = api.RoleUser
	}

	v.acting = true
	gen := env.Session.Generation()
	id := target.ID
	return v, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		_, err := env.Client.UpdateUserRole(ctx, id, newRole)
		return actionMsg{
			gen:     gen,
			err:     err,
			success: fmt.Sprintf("%s is now %s", target.Username, newRole),
		}
	}
}

func (v *UsersView) View(env *Env) string {
	var b strings.Builder
	b.WriteString(env.Styles.Title.Render("Users"))
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(env.Styles.Muted.Render("Loading users..."))
	case v.loadErr != nil:
		b.WriteString(env.Styles.Error.Render("Could not load users"))
		b.WriteString("\n")
		b.WriteString(env.Styles.Muted.Render(v.loadErr.Error()))
		b.WriteString("\n")
		b.WriteString(env.Styles.Help.Render("r retry"))
	default:
		for i, u := range v.users {
			role := u.Role
			if u.Role == api.RoleAdmin {
				role = env.Styles.AdminBadge.Render(u.Role)
			}
			line := fmt.Sprintf("%-20s %-30s %s  %d registrations",
				truncate(u.Username, 20), truncate(u.Email, 30), role, u.RegistrationStats.Total)
			if i == v.cursor {
				b.WriteString(env.Styles.Selected.Render(line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if v.acting {
			b.WriteString(env.Styles.Muted.Render("Working..."))
		} else {
			b.WriteString(env.Styles.Help.Render("↑/↓ move • t toggle role • r refresh • esc back"))
		}
	}
	return b.String()
}
