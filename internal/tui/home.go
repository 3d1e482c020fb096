package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
)

// featuredCount is how many upcoming activities the landing screen shows.
const featuredCount = 3

// menuEntry is one navigable item on the home screen.
type menuEntry struct {
	label  string
	path   string
	access Access
}

// HomeView is the landing screen: a menu filtered by what the current
// session may do, plus a strip of the latest active activities.
type HomeView struct {
	cursor   int
	featured []api.Activity
	seq      uint64
}

// NewHomeView creates the landing screen.
func NewHomeView() *HomeView {
	return &HomeView{}
}

func (v *HomeView) Title() string { return "CQNU Association" }

func (v *HomeView) Init(env *Env) tea.Cmd { return v.load(env) }

func (v *HomeView) load(env *Env) tea.Cmd {
	v.seq = nextFetchSeq()
	return fetch(env, v.seq, func(ctx context.Context) (interface{}, error) {
		page, err := env.Client.ListActivities(ctx, api.ActivityListOptions{
			Status:  api.ActivityStatusActive,
			Page:    1,
			PerPage: featuredCount,
		})
		if err != nil {
			return nil, err
		}
		return page.Activities, nil
	})
}

// entries lists the menu items the current session may enter. Gated
// entries are shown to anonymous users so the login redirect is
// discoverable, but admin entries only appear for admins.
func (v *HomeView) entries(env *Env) []menuEntry {
	snap := env.snapshot()

	items := []menuEntry{
		{label: "Browse activities", path: "/activities", access: AccessPublic},
	}
	if snap.IsLoggedIn() {
		items = append(items,
			menuEntry{label: "My registrations", path: "/registrations", access: AccessUser},
			menuEntry{label: "My profile", path: "/profile", access: AccessUser},
		)
	} else {
		items = append(items,
			menuEntry{label: "Log in", path: "/login", access: AccessPublic},
			menuEntry{label: "Create account", path: "/register", access: AccessPublic},
		)
	}
	if snap.IsAdmin() {
		items = append(items,
			menuEntry{label: "Admin dashboard", path: "/admin", access: AccessAdmin},
			menuEntry{label: "Manage users", path: "/admin/users", access: AccessAdmin},
			menuEntry{label: "New activity", path: "/admin/activities/new", access: AccessAdmin},
		)
	}
	return items
}

func (v *HomeView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
	if fetched, ok := msg.(fetchedMsg); ok {
		if env.stale(fetched, v.seq) || fetched.err != nil {
			// The menu stands on its own; a missing strip is not worth a toast.
			return v, nil
		}
		if list, ok := fetched.data.([]api.Activity); ok {
			if len(list) > featuredCount {
				list = list[:featuredCount]
			}
			v.featured = list
		}
		return v, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	items := v.entries(env)
	switch keyMsg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(items)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(items) {
			return v, Navigate(items[v.cursor].path)
		}
	}
	return v, nil
}

func (v *HomeView) View(env *Env) string {
	snap := env.snapshot()
	var b strings.Builder

	b.WriteString(env.Styles.Title.Render("CQNU Association Activities"))
	b.WriteString("\n")

	if snap.IsLoggedIn() {
		who := fmt.Sprintf("Logged in as %s", snap.User.Username)
		if snap.IsAdmin() {
			who += " " + env.Styles.AdminBadge.Render("admin")
		}
		b.WriteString(env.Styles.Subtitle.Render(who))
	} else {
		b.WriteString(env.Styles.Subtitle.Render("Browsing as guest"))
	}
	b.WriteString("\n")

	items := v.entries(env)
	if v.cursor >= len(items) {
		v.cursor = len(items) - 1
	}
	for i, item := range items {
		if i == v.cursor {
			b.WriteString(env.Styles.Selected.Render("› " + item.label))
		} else {
			b.WriteString("  " + item.label)
		}
		b.WriteString("\n")
	}

	if len(v.featured) > 0 {
		b.WriteString("\n")
		b.WriteString(env.Styles.Subtitle.Render("Latest activities"))
		b.WriteString("\n")
		for _, a := range v.featured {
			line := fmt.Sprintf("  %s  %s", a.StartTime.Format("Jan 02 15:04"), a.Title)
			if a.IsFull() {
				line += " " + env.Styles.Muted.Render("(full)")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(env.Styles.Help.Render("↑/↓ move • enter select • q quit"))
	return b.String()
}
