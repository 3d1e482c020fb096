package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
)

// RegistrationsView lists the current user's registrations.
type RegistrationsView struct {
	items   []api.RegistrationWithActivity
	loading bool
	loadErr error
	cursor  int
	seq     uint64
}

// NewRegistrationsView creates the "my registrations" screen.
func NewRegistrationsView() *RegistrationsView {
	return &RegistrationsView{}
}

func (v *RegistrationsView) Title() string { return "My registrations" }

func (v *RegistrationsView) Init(env *Env) tea.Cmd {
	return v.load(env)
}

func (v *RegistrationsView) load(env *Env) tea.Cmd {
	v.seq = nextFetchSeq()
	v.loading = true
	v.loadErr = nil
	return fetch(env, v.seq, func(ctx context.Context) (interface{}, error) {
		return env.Client.MyRegistrations(ctx, "")
	})
}

func (v *RegistrationsView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
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
		if items, ok := msg.data.([]api.RegistrationWithActivity); ok {
			v.items = items
		}
		if v.cursor >= len(v.items) {
			v.cursor = 0
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.items)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(v.items) {
				return v, Navigate(fmt.Sprintf("/activities/%d", v.items[v.cursor].Activity.ID))
			}
		case "r":
			return v, v.load(env)
		}
	}
	return v, nil
}

func (v *RegistrationsView) View(env *Env) string {
	var b strings.Builder
	b.WriteString(env.Styles.Title.Render("My registrations"))
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(env.Styles.Muted.Render("Loading registrations..."))
	case v.loadErr != nil:
		b.WriteString(env.Styles.Error.Render("Could not load registrations"))
		b.WriteString("\n")
		b.WriteString(env.Styles.Muted.Render(v.loadErr.Error()))
		b.WriteString("\n")
		b.WriteString(env.Styles.Help.Render("r retry"))
	case len(v.items) == 0:
		b.WriteString(env.Styles.Muted.Render("You have not registered for any activities yet."))
		b.WriteString("\n")
		b.WriteString(env.Styles.Help.Render("esc back"))
	default:
		for i, item := range v.items {
			status := env.Styles.statusStyle(item.Registration.Status).Render(item.Registration.Status)
			if item.Registration.Status == api.RegistrationStatusRegistered {
				status = env.Styles.Success.Render(item.Registration.Status)
			}
			line := fmt.Sprintf("%-40s %s  %s",
				truncate(item.Activity.Title, 40), status,
				item.Activity.StartTime.Format("2006-01-02 15:04"))
			if i == v.cursor {
				b.WriteString(env.Styles.Selected.Render(line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString(env.Styles.Help.Render("↑/↓ move • enter open activity • r refresh • esc back"))
	}
	return b.String()
}
