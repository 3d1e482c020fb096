package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
)

// statusFilters cycles through the list filter options.
var statusFilters = []string{"all", "active", "completed", "cancelled"}

const activitiesPerPage = 10

// ActivitiesView lists activities with a status filter, text search,
// and server-side pagination.
type ActivitiesView struct {
	page     api.ActivityPage
	loading  bool
	loadErr  error
	cursor   int
	filter   int
	pageNum  int
	seq      uint64
	search   textinput.Model
	focusing bool
}

// NewActivitiesView creates the activity list screen.
func NewActivitiesView() *ActivitiesView {
	search := textinput.New()
	search.Placeholder = "Search title, description, or location"
	search.CharLimit = 100
	return &ActivitiesView{pageNum: 1, search: search}
}

func (v *ActivitiesView) Title() string { return "Activities" }

func (v *ActivitiesView) Init(env *Env) tea.Cmd {
	return v.load(env)
}

// load starts a fetch for the current filter and page. Taking a fresh
// seq first means any in-flight older fetch lands stale and is discarded.
func (v *ActivitiesView) load(env *Env) tea.Cmd {
	v.seq = nextFetchSeq()
	v.loading = true
	v.loadErr = nil

	opts := api.ActivityListOptions{
		Status:  statusFilters[v.filter],
		Page:    v.pageNum,
		PerPage: activitiesPerPage,
	}
	return fetch(env, v.seq, func(ctx context.Context) (interface{}, error) {
		return env.Client.ListActivities(ctx, opts)
	})
}

// visible applies the client-side search to the fetched page. The query
// matches against title, description, and location.
func (v *ActivitiesView) visible() []api.Activity {
	query := strings.ToLower(strings.TrimSpace(v.search.Value()))
	if query == "" {
		return v.page.Activities
	}
	var out []api.Activity
	for _, a := range v.page.Activities {
		if matchesQuery(a, query) {
			out = append(out, a)
		}
	}
	return out
}

func matchesQuery(a api.Activity, query string) bool {
	for _, field := range []string{a.Title, a.Description, a.Location} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (v *ActivitiesView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
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
		page, ok := msg.data.(*api.ActivityPage)
		if !ok {
			return v, nil
		}
		v.page = *page
		if v.cursor >= len(v.page.Activities) {
			v.cursor = 0
		}
		return v, nil

	case tea.KeyMsg:
		if v.focusing {
			switch msg.String() {
			case "enter", "esc":
				v.focusing = false
				v.search.Blur()
				v.cursor = 0
				return v, nil
			}
			var cmd tea.Cmd
			v.search, cmd = v.search.Update(msg)
			return v, cmd
		}

		items := v.visible()
		switch msg.String() {
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
				return v, Navigate(fmt.Sprintf("/activities/%d", items[v.cursor].ID))
			}
		case "f":
			v.filter = (v.filter + 1) % len(statusFilters)
			v.pageNum = 1
			v.cursor = 0
			return v, v.load(env)
		case "/":
			v.focusing = true
			return v, v.search.Focus()
		case "n", "right":
			if v.pageNum < v.page.Pages {
				v.pageNum++
				return v, v.load(env)
			}
		case "p", "left":
			if v.pageNum > 1 {
				v.pageNum--
				return v, v.load(env)
			}
		case "r":
			return v, v.load(env)
		}
	}
	return v, nil
}

func (v *ActivitiesView) View(env *Env) string {
	var b strings.Builder
	b.WriteString(env.Styles.Title.Render("Activities"))
	b.WriteString("\n")

	filterLine := fmt.Sprintf("Filter: %s", statusFilters[v.filter])
	if v.page.Pages > 1 {
		filterLine += fmt.Sprintf(" • page %d/%d (%d total)", v.page.Page, v.page.Pages, v.page.Total)
	}
	b.WriteString(env.Styles.Subtitle.Render(filterLine))
	b.WriteString("\n")

	if v.focusing || v.search.Value() != "" {
		b.WriteString(v.search.View())
		b.WriteString("\n\n")
	}

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
		items := v.visible()
		if len(items) == 0 {
			b.WriteString(env.Styles.Muted.Render("No activities found."))
			b.WriteString("\n")
		}
		for i, a := range items {
			line := v.renderRow(env, a)
			if i == v.cursor && !v.focusing {
				b.WriteString(env.Styles.Selected.Render(line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString(env.Styles.Help.Render(
			"↑/↓ move • enter open • f filter • / search • ←/→ page • esc back"))
	}
	return b.String()
}

func (v *ActivitiesView) renderRow(env *Env, a api.Activity) string {
	status := env.Styles.statusStyle(a.Status).Render(a.Status)
	capacity := "unlimited"
	if a.MaxParticipants > 0 {
		capacity = fmt.Sprintf("%d/%d", a.RegisteredCount, a.MaxParticipants)
	}
	return fmt.Sprintf("%-40s %s  %s  %s",
		truncate(a.Title, 40), status, a.StartTime.Format("2006-01-02 15:04"), capacity)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
