package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/forms"
	"github.com/Stuart-0728/cqnu/internal/session"
)

// registerDoneMsg is the completion of an account creation attempt.
type registerDoneMsg struct {
	snap session.Snapshot
	err  error
}

// registerFields indexes into RegisterView.inputs.
const (
	regUsername = iota
	regEmail
	regPassword
	regConfirm
	regFullName
	regStudentID
	regFieldCount
)

// RegisterView is the account creation form. Success logs the new
// account in immediately.
type RegisterView struct {
	inputs []textinput.Model
	focus  int
	busy   bool
}

// NewRegisterView creates the sign-up screen.
func NewRegisterView() *RegisterView {
	labels := []string{"Username", "Email", "Password", "Confirm password", "Full name", "Student ID (optional)"}

	inputs := make([]textinput.Model, regFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = labels[i]
		inputs[i].CharLimit = 128
	}
	inputs[regPassword].EchoMode = textinput.EchoPassword
	inputs[regConfirm].EchoMode = textinput.EchoPassword

	return &RegisterView{inputs: inputs}
}

func (v *RegisterView) Title() string { return "Create account" }

func (v *RegisterView) Init(env *Env) tea.Cmd {
	return v.inputs[0].Focus()
}

func (v *RegisterView) setFocus(i int) tea.Cmd {
	v.inputs[v.focus].Blur()
	v.focus = i
	return v.inputs[i].Focus()
}

func (v *RegisterView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case registerDoneMsg:
		v.busy = false
		if msg.err != nil {
			return v, errorToast(msg.err)
		}
		return v, tea.Batch(
			ShowToast(ToastSuccess, "Account created, welcome "+msg.snap.User.Username),
			Navigate("/"),
		)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "esc":
			return v, Navigate("/")
		case "tab", "down":
			return v, v.setFocus((v.focus + 1) % regFieldCount)
		case "shift+tab", "up":
			return v, v.setFocus((v.focus + regFieldCount - 1) % regFieldCount)
		case "enter":
			if v.focus < regFieldCount-1 {
				return v, v.setFocus(v.focus + 1)
			}
			return v.submit(env)
		}
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *RegisterView) submit(env *Env) (View, tea.Cmd) {
	form := forms.RegisterForm{
		Username:        strings.TrimSpace(v.inputs[regUsername].Value()),
		Email:           strings.TrimSpace(v.inputs[regEmail].Value()),
		Password:        v.inputs[regPassword].Value(),
		ConfirmPassword: v.inputs[regConfirm].Value(),
		FullName:        strings.TrimSpace(v.inputs[regFullName].Value()),
		StudentID:       strings.TrimSpace(v.inputs[regStudentID].Value()),
	}
	if err := forms.Validate(form); err != nil {
		return v, toastFor(err)
	}

	v.busy = true
	req := form.Request()
	return v, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		snap, err := env.Session.Register(ctx, req)
		return registerDoneMsg{snap: snap, err: err}
	}
}

func (v *RegisterView) View(env *Env) string {
	var b strings.Builder
	b.WriteString(env.Styles.Title.Render("Create account"))
	b.WriteString("\n")
	for i := range v.inputs {
		b.WriteString(v.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if v.busy {
		b.WriteString(env.Styles.Muted.Render("Creating account..."))
	} else {
		b.WriteString(env.Styles.Help.Render("tab next field • enter submit • esc back"))
	}
	return b.String()
}
