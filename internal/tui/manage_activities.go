package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
)

// ManageActivitiesView is the admin activity list with edit, delete,
// and participant shortcuts.
type ManageActivitiesView struct {
	activities []api.DashboardActivity
	loading    bool
	loadErr    error
	acting     bool
	cursor     int
	seq        uint64
	// confirmDelete holds the id awaiting a second keypress; zero
	// means no delete is pending.
	confirmDelete int
}

// NewManageActivitiesView creates the admin activity management screen.
func NewManageActivitiesView() *ManageActivitiesView {
	return &ManageActivitiesView{}
}

func (v *ManageActivitiesView) Title() string { return "Manage activities" }

func (v *ManageActivitiesView) Init(env *Env) tea.Cmd {
	return v.load(env)
}

func (v *ManageActivitiesView) load(env *Env) tea.Cmd {
	v.seq = nextFetchSeq()
	v.loading = true
	v.loadErr = nil
	v.confirmDelete = 0
	return fetch(env, v.seq, func(ctx context.Context) (interface{}, error) {
		return env.Client.DashboardActivities(ctx, "")
	})
}

func (v *ManageActivitiesView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
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
		if activities, ok := msg.data.([]api.DashboardActivity); ok {
			v.activities = activities
		}
		if v.cursor >= len(v.activities) {
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
		return v.handleKey(env, msg)
	}
	return v, nil
}

func (v *ManageActivitiesView) handleKey(env *Env, msg tea.KeyMsg) (View, tea.Cmd) {
	// A pending delete only accepts confirm or abort.
	if v.confirmDelete != 0 {
		if msg.String() == "y" {
			return v.deleteSelected(env)
		}
		v.confirmDelete = 0
		return v, ShowToast(ToastInfo, "Delete cancelled")
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.activities)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(v.activities) {
			return v, Navigate(fmt.Sprintf("/activities/%d", v.activities[v.cursor].ID))
		}
	case "e":
		if v.cursor < len(v.activities) {
			return v, Navigate(fmt.Sprintf("/admin/activities/%d/edit", v.activities[v.cursor].ID))
		}
	case "p":
		if v.cursor < len(v.activities) {
			return v, Navigate(fmt.Sprintf("/admin/activities/%d/participants", v.activities[v.cursor].ID))
		}
	case "n":
		return v, Navigate("/admin/activities/new")
	case "d":
		if v.cursor < len(v.activities) {
			v.confirmDelete = v.activities[v.cursor].ID
		}
	case "r":
		return v, v.load(env)
	}
	return v, nil
}

func (v *ManageActivitiesView) deleteSelected(env *Env) (View, tea.Cmd) {
	id := v.confirmDelete
	v.confirmDelete = 0
	v.acting = true

	gen := env.Session.Generation()
	return v, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return actionMsg{gen: gen, err: env.Client.DeleteActivity(ctx, id), success: "Activity deleted"}
	}
}

func (v *ManageActivitiesView) View(env *Env) string {
	var b strings.Builder
	b.WriteString(env.Styles.Title.Render("Manage activities"))
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(env.Styles.Muted.Render("Loading activities..."))
	case v.loadErr != nil:
		b.WriteString(env.Styles.Error.Render("Could not load activities"))
		b.WriteString("\n")
		b.WriteString(env.Styles.Muted.Render(v.loadErr.Error()))
		b.WriteString("\n")
		b.WriteString(env.Styles.Help.Render("r retry"))
	default:
		for i, a := range v.activities {
			status := env.Styles.statusStyle(a.Status).Render(a.Status)
			line := fmt.Sprintf("%-40s %s  %d registered",
				truncate(a.Title, 40), status, a.RegistrationStats.Active)
			if i == v.cursor {
				b.WriteString(env.Styles.Selected.Render(line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		switch {
		case v.confirmDelete != 0:
			b.WriteString(env.Styles.Warning.Render("Delete this activity? y confirms, any other key aborts"))
		case v.acting:
			b.WriteString(env.Styles.Muted.Render("Working..."))
		default:
			b.WriteString(env.Styles.Help.Render(
				"↑/↓ move • enter open • e edit • p participants • n new • d delete • r refresh • esc back"))
		}
	}
	return b.String()
}
