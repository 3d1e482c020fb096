package tui

import (
	"context"
	stderrors "errors"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
	"github.com/Stuart-0728/cqnu/internal/errors"
	"github.com/Stuart-0728/cqnu/internal/session"
)

// requestTimeout bounds every fetch a view issues.
const requestTimeout = 15 * time.Second

// Env is the shared state views read: the API client, the session
// store, and rendering context. The app owns it; views hold a pointer.
type Env struct {
	Client  *api.Client
	Session *session.Store
	Styles  Styles
	Width   int
	Height  int
	Now     func() time.Time
}

// snapshot is a shorthand for the current session state.
func (e *Env) snapshot() session.Snapshot {
	return e.Session.Snapshot()
}

// View is one screen of the application. Update returns the view to
// keep displaying, which is usually itself.
type View interface {
	Title() string
	Init(env *Env) tea.Cmd
	Update(env *Env, msg tea.Msg) (View, tea.Cmd)
	View(env *Env) string
}

// NavigateMsg asks the app to route to a new path.
type NavigateMsg struct {
	Path string
}

// Navigate builds a command that routes to path.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}

// fetchedMsg is the completion of one async fetch. Consumers must
// discard it unless both tags match their current expectation: gen
// pins the session epoch the fetch started under, seq the exact
// request the view is waiting on.
type fetchedMsg struct {
	gen  uint64
	seq  uint64
	data interface{}
	err  error
}

// fetchSeq issues process-unique fetch tags. A global counter means a
// completion can never collide with a request issued by a different
// view instance, only match the one that is still waiting for it.
var fetchSeq atomic.Uint64

// nextFetchSeq returns a fetch tag no other request has carried.
func nextFetchSeq() uint64 {
	return fetchSeq.Add(1)
}

// fetch runs fn off the update loop and delivers a tagged completion.
func fetch(env *Env, seq uint64, fn func(ctx context.Context) (interface{}, error)) tea.Cmd {
	gen := env.Session.Generation()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		data, err := fn(ctx)
		return fetchedMsg{gen: gen, seq: seq, data: data, err: err}
	}
}

// stale reports whether a completion belongs to an abandoned request:
// a different session epoch, or any request other than the one the
// consulting view last issued (superseded, or from a replaced view).
func (e *Env) stale(msg fetchedMsg, seq uint64) bool {
	return msg.gen != e.Session.Generation() || msg.seq != seq
}

// errorToast converts a failed operation into an error notification.
// Coded failures use the code as the toast title so the one-line slot
// stays readable.
func errorToast(err error) tea.Cmd {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return ShowTitledToast(ToastError, string(appErr.Code), appErr.Message)
	}
	return ShowToast(ToastError, err.Error())
}

// toastFor picks the notification severity for a failure: input
// rejected before any request went out is a warning, everything else
// an error.
func toastFor(err error) tea.Cmd {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && strings.HasPrefix(string(appErr.Code), "FORM-") {
		return ShowToast(ToastWarning, appErr.Message)
	}
	return errorToast(err)
}
