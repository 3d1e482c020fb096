package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
)

// detailData is everything the detail screen needs in one fetch.
type detailData struct {
	activity   api.Activity
	registered bool
}

// ActivityDetailView shows one activity and, for logged-in users, the
// sign-up / cancel action.
type ActivityDetailView struct {
	id      int
	data    detailData
	loading bool
	loadErr error
	acting  bool
	seq     uint64
}

// NewActivityDetailView creates the detail screen for one activity.
func NewActivityDetailView(id int) *ActivityDetailView {
	return &ActivityDetailView{id: id}
}

func (v *ActivityDetailView) Title() string { return "Activity" }

func (v *ActivityDetailView) Init(env *Env) tea.Cmd {
	return v.load(env)
}

func (v *ActivityDetailView) load(env *Env) tea.Cmd {
	v.seq = nextFetchSeq()
	v.loading = true
	v.loadErr = nil

	id := v.id
	loggedIn := env.snapshot().IsLoggedIn()
	return fetch(env, v.seq, func(ctx context.Context) (interface{}, error) {
		if loggedIn {
			state, err := env.Client.RegistrationStatus(ctx, id)
			if err != nil {
				return nil, err
			}
			return detailData{activity: state.Activity, registered: state.IsRegistered}, nil
		}
		activity, err := env.Client.GetActivity(ctx, id)
		if err != nil {
			return nil, err
		}
		return detailData{activity: *activity}, nil
	})
}

// actionMsg is the completion of a sign-up or cancel.
type actionMsg struct {
	gen     uint64
	err     error
	success string
}

func (v *ActivityDetailView) act(env *Env, fn func(ctx context.Context) error, success string) tea.Cmd {
	v.acting = true
	gen := env.Session.Generation()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return actionMsg{gen: gen, err: fn(ctx), success: success}
	}
}

func (v *ActivityDetailView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
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
		if data, ok := msg.data.(detailData); ok {
			v.data = data
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
		// Re-fetch so the count and the action label update together.
		return v, tea.Batch(ShowToast(ToastSuccess, msg.success), v.load(env))

	case tea.KeyMsg:
		if v.loading || v.acting {
			return v, nil
		}
		switch msg.String() {
		case "s":
			return v.signUp(env)
		case "c":
			return v.cancel(env)
		case "r":
			return v, v.load(env)
		}
	}
	return v, nil
}

// signUp validates locally before hitting the server so the common
// refusals are instant; the server remains the final word.
func (v *ActivityDetailView) signUp(env *Env) (View, tea.Cmd) {
	snap := env.snapshot()
	if !snap.IsLoggedIn() {
		return v, tea.Batch(
			ShowToast(ToastWarning, "Please log in first"),
			Navigate("/login"),
		)
	}
	if v.data.registered {
		return v, ShowToast(ToastInfo, "Already registered for this activity")
	}
	if !v.data.activity.IsRegistrationOpen(env.Now()) {
		return v, ShowToast(ToastWarning, "Registration is closed for this activity")
	}
	if v.data.activity.IsFull() {
		return v, ShowToast(ToastWarning, "This activity is full")
	}

	id := v.id
	return v, v.act(env, func(ctx context.Context) error {
		_, err := env.Client.SignUp(ctx, id, "")
		return err
	}, "Registered for "+v.data.activity.Title)
}

func (v *ActivityDetailView) cancel(env *Env) (View, tea.Cmd) {
	if !env.snapshot().IsLoggedIn() || !v.data.registered {
		return v, nil
	}

	id := v.id
	return v, v.act(env, func(ctx context.Context) error {
		return env.Client.CancelRegistration(ctx, id)
	}, "Registration cancelled")
}

func (v *ActivityDetailView) View(env *Env) string {
	var b strings.Builder

	if v.loading {
		return env.Styles.Muted.Render("Loading activity...")
	}
	if v.loadErr != nil {
		b.WriteString(env.Styles.Error.Render("Could not load activity"))
		b.WriteString("\n")
		b.WriteString(env.Styles.Muted.Render(v.loadErr.Error()))
		b.WriteString("\n")
		b.WriteString(env.Styles.Help.Render("r retry • esc back"))
		return b.String()
	}

	a := v.data.activity
	b.WriteString(env.Styles.Title.Render(a.Title))
	b.WriteString("\n")
	b.WriteString(env.Styles.statusStyle(a.Status).Render(a.Status))
	if v.data.registered {
		b.WriteString("  " + env.Styles.Badge.Render("registered"))
	}
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(env.Styles.Label.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(env.Styles.Value.Render(value))
		b.WriteString("\n")
	}
	row("Location", a.Location)
	row("Starts", a.StartTime.Format("2006-01-02 15:04"))
	row("Ends", a.EndTime.Format("2006-01-02 15:04"))
	if !a.RegistrationDeadline.IsZero() {
		row("Deadline", a.RegistrationDeadline.Format("2006-01-02 15:04"))
	}
	if a.MaxParticipants > 0 {
		row("Capacity", fmt.Sprintf("%d/%d", a.RegisteredCount, a.MaxParticipants))
	} else {
		row("Capacity", fmt.Sprintf("%d registered (unlimited)", a.RegisteredCount))
	}

	if a.Description != "" {
		b.WriteString("\n")
		b.WriteString(a.Description)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.acting {
		b.WriteString(env.Styles.Muted.Render("Working..."))
	} else {
		b.WriteString(env.Styles.Help.Render(v.helpLine(env)))
	}
	return b.String()
}

func (v *ActivityDetailView) helpLine(env *Env) string {
	snap := env.snapshot()
	switch {
	case !snap.IsLoggedIn():
		return "s sign up (login required) • r refresh • esc back"
	case v.data.registered:
		return "c cancel registration • r refresh • esc back"
	case v.data.activity.IsRegistrationOpen(env.Now()) && !v.data.activity.IsFull():
		return "s sign up • r refresh • esc back"
	default:
		return "registration closed • r refresh • esc back"
	}
}
