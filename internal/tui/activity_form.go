package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
	"github.com/Stuart-0728/cqnu/internal/forms"
)

// activity form field indexes.
const (
	formTitle = iota
	formDescription
	formLocation
	formStart
	formEnd
	formDeadline
	formMax
	formStatus
	formFieldCount
)

// ActivityFormView is the admin create/edit activity form. With a
// non-zero id it prefills from the existing activity and saves as an
// update.
type ActivityFormView struct {
	id      int
	inputs  []textinput.Model
	focus   int
	busy    bool
	loading bool
	seq     uint64
}

// NewActivityFormView creates the activity editor. id zero means a
// new activity.
func NewActivityFormView(id int) *ActivityFormView {
	labels := []string{
		"Title", "Description", "Location",
		"Start (2006-01-02 15:04)", "End (2006-01-02 15:04)", "Deadline (2006-01-02 15:04)",
		"Max participants (0 = unlimited)", "Status (draft/active/completed/cancelled)",
	}

	inputs := make([]textinput.Model, formFieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = labels[i]
		inputs[i].CharLimit = 500
	}
	inputs[formStatus].SetValue(api.ActivityStatusDraft)

	return &ActivityFormView{id: id, inputs: inputs}
}

func (v *ActivityFormView) Title() string {
	if v.id > 0 {
		return "Edit activity"
	}
	return "New activity"
}

func (v *ActivityFormView) Init(env *Env) tea.Cmd {
	if v.id == 0 {
		return v.inputs[0].Focus()
	}
	v.seq = nextFetchSeq()
	v.loading = true
	id := v.id
	return fetch(env, v.seq, func(ctx context.Context) (interface{}, error) {
		return env.Client.GetActivity(ctx, id)
	})
}

// prefill copies an existing activity into the inputs.
func (v *ActivityFormView) prefill(a api.Activity) {
	const layout = "2006-01-02 15:04"
	v.inputs[formTitle].SetValue(a.Title)
	v.inputs[formDescription].SetValue(a.Description)
	v.inputs[formLocation].SetValue(a.Location)
	v.inputs[formStart].SetValue(a.StartTime.Format(layout))
	v.inputs[formEnd].SetValue(a.EndTime.Format(layout))
	if !a.RegistrationDeadline.IsZero() {
		v.inputs[formDeadline].SetValue(a.RegistrationDeadline.Format(layout))
	}
	v.inputs[formMax].SetValue(strconv.Itoa(a.MaxParticipants))
	v.inputs[formStatus].SetValue(a.Status)
}

func (v *ActivityFormView) setFocus(i int) tea.Cmd {
	v.inputs[v.focus].Blur()
	v.focus = i
	return v.inputs[i].Focus()
}

func (v *ActivityFormView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		if env.stale(msg, v.seq) {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			return v, tea.Batch(errorToast(msg.err), Navigate("/admin/activities"))
		}
		if a, ok := msg.data.(*api.Activity); ok {
			v.prefill(*a)
		}
		return v, v.inputs[0].Focus()

	case actionMsg:
		v.busy = false
		if msg.gen != env.Session.Generation() {
			return v, nil
		}
		if msg.err != nil {
			return v, errorToast(msg.err)
		}
		return v, tea.Batch(
			ShowToast(ToastSuccess, msg.success),
			Navigate("/admin/activities"),
		)

	case tea.KeyMsg:
		if v.busy || v.loading {
			return v, nil
		}
		switch msg.String() {
		case "esc":
			return v, Navigate("/admin/activities")
		case "tab", "down":
			return v, v.setFocus((v.focus + 1) % formFieldCount)
		case "shift+tab", "up":
			return v, v.setFocus((v.focus + formFieldCount - 1) % formFieldCount)
		case "enter":
			if v.focus < formFieldCount-1 {
				return v, v.setFocus(v.focus + 1)
			}
			return v.submit(env)
		}
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *ActivityFormView) submit(env *Env) (View, tea.Cmd) {
	maxParticipants := 0
	if raw := strings.TrimSpace(v.inputs[formMax].Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return v, ShowToast(ToastWarning, "max participants must be a non-negative number")
		}
		maxParticipants = n
	}

	form := forms.ActivityForm{
		Title:           strings.TrimSpace(v.inputs[formTitle].Value()),
		Description:     strings.TrimSpace(v.inputs[formDescription].Value()),
		Location:        strings.TrimSpace(v.inputs[formLocation].Value()),
		StartTime:       strings.TrimSpace(v.inputs[formStart].Value()),
		EndTime:         strings.TrimSpace(v.inputs[formEnd].Value()),
		Deadline:        strings.TrimSpace(v.inputs[formDeadline].Value()),
		MaxParticipants: maxParticipants,
		Status:          strings.TrimSpace(v.inputs[formStatus].Value()),
	}
	draft, err := form.Draft()
	if err != nil {
		return v, toastFor(err)
	}

	v.busy = true
	gen := env.Session.Generation()
	id := v.id
	return v, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if id > 0 {
			_, err := env.Client.UpdateActivity(ctx, id, draft)
			return actionMsg{gen: gen, err: err, success: "Activity updated"}
		}
		_, err := env.Client.CreateActivity(ctx, draft)
		return actionMsg{gen: gen, err: err, success: "Activity created"}
	}
}

func (v *ActivityFormView) View(env *Env) string {
	var b strings.Builder
	b.WriteString(env.Styles.Title.Render(v.Title()))
	b.WriteString("\n")

	if v.loading {
		b.WriteString(env.Styles.Muted.Render("Loading activity..."))
		return b.String()
	}

	for i := range v.inputs {
		b.WriteString(fmt.Sprintf("%s\n", v.inputs[i].View()))
	}
	b.WriteString("\n")
	if v.busy {
		b.WriteString(env.Styles.Muted.Render("Saving..."))
	} else {
		b.WriteString(env.Styles.Help.Render("tab next field • enter on last field saves • esc back"))
	}
	return b.String()
}
