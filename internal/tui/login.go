package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/forms"
	"github.com/Stuart-0728/cqnu/internal/session"
)

// loginDoneMsg is the completion of a login attempt.
type loginDoneMsg struct {
	snap session.Snapshot
	err  error
}

// LoginView is the credential prompt. A successful login replays the
// path the user was originally heading for.
type LoginView struct {
	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	returnTo string
}

// NewLoginView creates the login screen. returnTo is navigated to
// after success; empty means home.
func NewLoginView(returnTo string) *LoginView {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	return &LoginView{username: username, password: password, returnTo: returnTo}
}

func (v *LoginView) Title() string { return "Log in" }

func (v *LoginView) Init(env *Env) tea.Cmd {
	return v.username.Focus()
}

func (v *LoginView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		v.busy = false
		if msg.err != nil {
			v.password.SetValue("")
			return v, errorToast(msg.err)
		}
		return v, tea.Batch(
			ShowToast(ToastSuccess, "Welcome back, "+msg.snap.User.Username),
			Navigate(loginDestination(v.returnTo, msg.snap)),
		)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "esc":
			return v, Navigate("/")
		case "tab", "shift+tab", "up", "down":
			v.focus = (v.focus + 1) % 2
			if v.focus == 0 {
				v.password.Blur()
				return v, v.username.Focus()
			}
			v.username.Blur()
			return v, v.password.Focus()
		case "enter":
			if v.focus == 0 {
				v.focus = 1
				v.username.Blur()
				return v, v.password.Focus()
			}
			return v.submit(env)
		}
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.username, cmd = v.username.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

// loginDestination picks the post-login path: the replayed path when one
// was gated, otherwise the role's default landing view.
func loginDestination(returnTo string, snap session.Snapshot) string {
	if returnTo != "" {
		return returnTo
	}
	if snap.IsAdmin() {
		return "/admin"
	}
	return "/"
}

func (v *LoginView) submit(env *Env) (View, tea.Cmd) {
	form := forms.LoginForm{
		Username: strings.TrimSpace(v.username.Value()),
		Password: v.password.Value(),
	}
	if err := forms.Validate(form); err != nil {
		return v, toastFor(err)
	}

	v.busy = true
	return v, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		snap, err := env.Session.Login(ctx, form.Username, form.Password)
		return loginDoneMsg{snap: snap, err: err}
	}
}

func (v *LoginView) View(env *Env) string {
	var b strings.Builder
	b.WriteString(env.Styles.Title.Render("Log in"))
	b.WriteString("\n")
	b.WriteString(v.username.View())
	b.WriteString("\n")
	b.WriteString(v.password.View())
	b.WriteString("\n\n")
	if v.busy {
		b.WriteString(env.Styles.Muted.Render("Logging in..."))
	} else {
		b.WriteString(env.Styles.Help.Render("tab switch field • enter submit • esc back"))
	}
	return b.String()
}
