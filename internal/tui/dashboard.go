package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
)

// DashboardView is the admin landing screen: platform stats plus
// shortcuts into the management screens.
type DashboardView struct {
	summary api.DashboardSummary
	loading bool
	loadErr error
	cursor  int
	seq     uint64
}

var dashboardShortcuts = []menuEntry{
	{label: "Manage activities", path: "/admin/activities", access: AccessAdmin},
	{label: "Manage users", path: "/admin/users", access: AccessAdmin},
	{label: "New activity", path: "/admin/activities/new", access: AccessAdmin},
}

// NewDashboardView creates the admin dashboard screen.
func NewDashboardView() *DashboardView {
	return &DashboardView{}
}

func (v *DashboardView) Title() string { return "Dashboard" }

func (v *DashboardView) Init(env *Env) tea.Cmd {
	return v.load(env)
}

func (v *DashboardView) load(env *Env) tea.Cmd {
	v.seq = nextFetchSeq()
	v.loading = true
	v.loadErr = nil
	return fetch(env, v.seq, func(ctx context.Context) (interface{}, error) {
		return env.Client.DashboardSummary(ctx)
	})
}

func (v *DashboardView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
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
		if summary, ok := msg.data.(*api.DashboardSummary); ok {
			v.summary = *summary
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(dashboardShortcuts)-1 {
				v.cursor++
			}
		case "enter":
			return v, Navigate(dashboardShortcuts[v.cursor].path)
		case "r":
			return v, v.load(env)
		}
	}
	return v, nil
}

func (v *DashboardView) View(env *Env) string {
	var b strings.Builder
	b.WriteString(env.Styles.Title.Render("Admin dashboard"))
	b.WriteString("\n")

	if v.loading {
		b.WriteString(env.Styles.Muted.Render("Loading stats..."))
		return b.String()
	}
	if v.loadErr != nil {
		b.WriteString(env.Styles.Error.Render("Could not load stats"))
		b.WriteString("\n")
		b.WriteString(env.Styles.Muted.Render(v.loadErr.Error()))
		b.WriteString("\n")
		b.WriteString(env.Styles.Help.Render("r retry"))
		return b.String()
	}

	s := v.summary.Stats
	b.WriteString(env.Styles.Info.Render(fmt.Sprintf(
		"Users %d (%d admins) • Activities %d (%d active) • Registrations %d (%d active)",
		s.Users.Total, s.Users.Admins,
		s.Activities.Total, s.Activities.Active,
		s.Registrations.Total, s.Registrations.Active)))
	b.WriteString("\n\n")

	if len(v.summary.UpcomingActivities) > 0 {
		b.WriteString(env.Styles.Subtitle.Render("Upcoming"))
		b.WriteString("\n")
		for _, a := range v.summary.UpcomingActivities {
			b.WriteString(env.Styles.Muted.Render("  " + a.StartTime.Format("01-02 15:04") + "  "))
			b.WriteString(truncate(a.Title, 50))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	for i, item := range dashboardShortcuts {
		if i == v.cursor {
			b.WriteString(env.Styles.Selected.Render("› " + item.label))
		} else {
			b.WriteString("  " + item.label)
		}
		b.WriteString("\n")
	}

	b.WriteString(env.Styles.Help.Render("↑/↓ move • enter select • r refresh • esc back"))
	return b.String()
}
