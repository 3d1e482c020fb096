package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
	"github.com/Stuart-0728/cqnu/internal/log"
	"github.com/Stuart-0728/cqnu/internal/session"
)

// sessionSnapshotMsg delivers a session transition into the update
// loop.
type sessionSnapshotMsg struct {
	snap session.Snapshot
}

// initDoneMsg signals that the persisted session has been resolved.
type initDoneMsg struct {
	snap session.Snapshot
}

// App is the root model: it owns the environment, routes paths to
// views, and renders the notification slot above the active view.
type App struct {
	env    *Env
	router *Router
	toast  Toast
	logger *log.Logger

	view    View
	path    string
	spinner spinner.Model
	// history holds the paths behind the current one; esc pops it.
	history []string

	sessionCh <-chan session.Snapshot
	ready     bool
	quitting  bool
}

// NewApp wires the root model. The session store must not be
// initialized yet; the app does that on startup so the loading state
// renders.
func NewApp(client *api.Client, store *session.Store) *App {
	env := &Env{
		Client:  client,
		Session: store,
		Styles:  DefaultStyles(),
		Now:     time.Now,
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	app := &App{
		env:       env,
		logger:    log.DefaultLogger().With("component", "tui"),
		sessionCh: store.Watch(),
		path:      "/",
		spinner:   sp,
	}
	app.router = NewRouter(app.routes())
	return app
}

// routes is the application's route table. Access is enforced by the
// router before a view is built.
func (a *App) routes() []Route {
	return []Route{
		{Pattern: "/", Access: AccessPublic, Build: func(Params) View { return NewHomeView() }},
		{Pattern: "/login", Access: AccessPublic, Build: func(Params) View { return NewLoginView("") }},
		{Pattern: "/register", Access: AccessPublic, Build: func(Params) View { return NewRegisterView() }},
		{Pattern: "/denied", Access: AccessPublic, Build: func(Params) View { return NewDeniedView() }},
		{Pattern: "/activities", Access: AccessPublic, Build: func(Params) View { return NewActivitiesView() }},
		{Pattern: "/activities/:id", Access: AccessPublic, Build: func(p Params) View { return NewActivityDetailView(p.Int("id")) }},
		{Pattern: "/profile", Access: AccessUser, Build: func(Params) View { return NewProfileView() }},
		{Pattern: "/registrations", Access: AccessUser, Build: func(Params) View { return NewRegistrationsView() }},
		{Pattern: "/admin", Access: AccessAdmin, Build: func(Params) View { return NewDashboardView() }},
		{Pattern: "/admin/users", Access: AccessAdmin, Build: func(Params) View { return NewUsersView() }},
		{Pattern: "/admin/activities", Access: AccessAdmin, Build: func(Params) View { return NewManageActivitiesView() }},
		{Pattern: "/admin/activities/new", Access: AccessAdmin, Build: func(Params) View { return NewActivityFormView(0) }},
		{Pattern: "/admin/activities/:id/edit", Access: AccessAdmin, Build: func(p Params) View { return NewActivityFormView(p.Int("id")) }},
		{Pattern: "/admin/activities/:id/participants", Access: AccessAdmin, Build: func(p Params) View { return NewParticipantsView(p.Int("id")) }},
	}
}

// Init resolves the persisted session and starts watching transitions.
func (a *App) Init() tea.Cmd {
	store := a.env.Session
	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			return initDoneMsg{snap: store.Initialize(ctx)}
		},
		a.waitForSession(),
		a.spinner.Tick,
	)
}

// waitForSession delivers the next session transition as a message.
func (a *App) waitForSession() tea.Cmd {
	ch := a.sessionCh
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return sessionSnapshotMsg{snap: snap}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.env.Width = msg.Width
		a.env.Height = msg.Height
		return a, nil

	case initDoneMsg:
		a.ready = true
		return a, a.navigate(a.path, false)

	case spinner.TickMsg:
		if a.ready {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case sessionSnapshotMsg:
		// The active route may no longer be allowed for this session;
		// re-resolving bounces the user out if so.
		var cmd tea.Cmd
		if a.ready {
			cmd = a.reresolve()
		}
		return a, tea.Batch(cmd, a.waitForSession())

	case NavigateMsg:
		return a, a.navigate(msg.Path, true)

	case ShowToastMsg:
		return a, a.toast.Show(msg.Kind, msg.Title, msg.Text)

	case toastExpiredMsg:
		a.toast.Expire(msg)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			a.quitting = true
			return a, tea.Quit
		case "esc":
			// Views with text focus swallow esc themselves before it
			// gets here via the focus checks below.
			if a.textFocused() {
				break
			}
			return a, a.back()
		case "q":
			if !a.textFocused() {
				a.quitting = true
				return a, tea.Quit
			}
		}
	}

	if a.view == nil {
		return a, nil
	}
	view, cmd := a.view.Update(a.env, msg)
	a.view = view
	return a, cmd
}

// textFocused reports whether the active view is capturing free text,
// in which case global single-letter shortcuts must not fire.
func (a *App) textFocused() bool {
	switch v := a.view.(type) {
	case *LoginView, *RegisterView, *ActivityFormView:
		return true
	case *ActivitiesView:
		return v.focusing
	default:
		return false
	}
}

// navigate resolves a path and installs the resulting view. push
// records the previous path in the history.
func (a *App) navigate(path string, push bool) tea.Cmd {
	res := a.router.Resolve(path, a.env.snapshot())

	var cmds []tea.Cmd
	if res.RedirectTo != "" {
		a.logger.Debug("route gated", "path", path, "redirect", res.RedirectTo)
		if res.Reason != "" {
			cmds = append(cmds, ShowToast(ToastWarning, res.Reason))
		}
		redirect := a.router.Resolve(res.RedirectTo, a.env.snapshot())
		view := redirect.View
		if res.RedirectTo == a.router.LoginPath && res.ReturnTo != "" {
			view = NewLoginView(res.ReturnTo)
		}
		cmds = append(cmds, a.install(res.RedirectTo, view, push))
		return tea.Batch(cmds...)
	}

	view := res.View
	if view == nil {
		view = NewNotFoundView(path)
	}
	return a.install(path, view, push)
}

// install swaps the active view and runs its Init.
func (a *App) install(path string, view View, push bool) tea.Cmd {
	if push && a.path != "" && a.path != path {
		a.history = append(a.history, a.path)
	}
	a.path = path
	a.view = view
	if view == nil {
		return nil
	}
	return view.Init(a.env)
}

// reresolve re-routes the current path against the new session. Views
// stay in place when still allowed; fresh state after login/logout
// comes from the generation-tagged fetch discard, not from resetting
// the view.
func (a *App) reresolve() tea.Cmd {
	res := a.router.Resolve(a.path, a.env.snapshot())
	if res.RedirectTo == "" {
		return nil
	}
	return a.navigate(a.path, false)
}

// back pops the navigation history.
func (a *App) back() tea.Cmd {
	if len(a.history) == 0 {
		if a.path != "/" {
			return a.navigate("/", false)
		}
		return nil
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	return a.navigate(prev, false)
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return a.spinner.View() + a.env.Styles.Muted.Render(" Connecting...")
	}

	var b strings.Builder
	if a.toast.Visible() {
		b.WriteString(a.toast.Render(a.env.Styles))
		b.WriteString("\n\n")
	}
	if a.view != nil {
		b.WriteString(a.view.View(a.env))
	}
	b.WriteString("\n")
	return b.String()
}

// Run starts the full-screen application and blocks until exit.
func Run(client *api.Client, store *session.Store) error {
	p := tea.NewProgram(NewApp(client, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
