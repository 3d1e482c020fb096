package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// toastDuration is how long a notification stays visible.
const toastDuration = 4 * time.Second

// ToastKind selects the toast's style.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// ShowToastMsg replaces the current notification. Title is optional
// and rendered as a prefix when present.
type ShowToastMsg struct {
	Kind  ToastKind
	Title string
	Text  string
}

// toastExpiredMsg is the delayed dismissal for one specific showing.
type toastExpiredMsg struct {
	seq uint64
}

// Toast is the single notification slot. Showing a new toast replaces
// the old one and bumps the sequence, so a timer armed for an earlier
// showing can never dismiss a later one.
type Toast struct {
	kind    ToastKind
	title   string
	text    string
	seq     uint64
	visible bool
}

// ShowToast builds a command that displays an untitled notification.
func ShowToast(kind ToastKind, text string) tea.Cmd {
	return ShowTitledToast(kind, "", text)
}

// ShowTitledToast builds a command that displays a notification with
// a title prefix.
func ShowTitledToast(kind ToastKind, title, text string) tea.Cmd {
	return func() tea.Msg {
		return ShowToastMsg{Kind: kind, Title: title, Text: text}
	}
}

// Show replaces the current toast and arms its dismissal timer.
func (t *Toast) Show(kind ToastKind, title, text string) tea.Cmd {
	t.seq++
	t.kind = kind
	t.title = title
	t.text = text
	t.visible = true

	seq := t.seq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// Expire handles a dismissal timer firing. Timers from replaced
// showings are ignored.
func (t *Toast) Expire(msg toastExpiredMsg) {
	if msg.seq == t.seq {
		t.visible = false
	}
}

// Dismiss hides the toast immediately.
func (t *Toast) Dismiss() {
	t.visible = false
}

// Visible reports whether a notification should render.
func (t *Toast) Visible() bool {
	return t.visible
}

// Render draws the toast with the matching style.
func (t *Toast) Render(styles Styles) string {
	if !t.visible {
		return ""
	}
	line := t.text
	if t.title != "" {
		line = t.title + ": " + t.text
	}
	switch t.kind {
	case ToastSuccess:
		return styles.Success.Render("✓ " + line)
	case ToastWarning:
		return styles.Warning.Render("! " + line)
	case ToastError:
		return styles.Error.Render("✗ " + line)
	default:
		return styles.Info.Render("• " + line)
	}
}
