package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// DeniedView is where admin-gated navigation lands for non-admins.
type DeniedView struct{}

// NewDeniedView creates the access-denied screen.
func NewDeniedView() *DeniedView { return &DeniedView{} }

func (v *DeniedView) Title() string                                { return "Access denied" }
func (v *DeniedView) Init(env *Env) tea.Cmd                        { return nil }
func (v *DeniedView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) { return v, nil }

func (v *DeniedView) View(env *Env) string {
	var b strings.Builder
	b.WriteString(env.Styles.Error.Render("Access denied"))
	b.WriteString("\n\n")
	b.WriteString("This page requires the admin role.")
	b.WriteString("\n")
	b.WriteString(env.Styles.Help.Render("esc back"))
	return b.String()
}

// NotFoundView renders for paths no route matches.
type NotFoundView struct {
	path string
}

// NewNotFoundView creates the not-found screen for a path.
func NewNotFoundView(path string) *NotFoundView { return &NotFoundView{path: path} }

func (v *NotFoundView) Title() string                                { return "Not found" }
func (v *NotFoundView) Init(env *Env) tea.Cmd                        { return nil }
func (v *NotFoundView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) { return v, nil }

func (v *NotFoundView) View(env *Env) string {
	var b strings.Builder
	b.WriteString(env.Styles.Warning.Render("Page not found"))
	b.WriteString("\n\n")
	b.WriteString(env.Styles.Muted.Render(v.path))
	b.WriteString("\n")
	b.WriteString(env.Styles.Help.Render("esc back"))
	return b.String()
}
