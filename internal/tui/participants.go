package tui

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Stuart-0728/cqnu/internal/api"
	"github.com/Stuart-0728/cqnu/internal/errors"
)

// savedMsg reports a CSV export written to disk.
type savedMsg struct {
	filename string
	err      error
}

// attendanceMsg reports a batch attendance update.
type attendanceMsg struct {
	gen   uint64
	count int
	err   error
}

// ParticipantsView shows an activity's participant export, can save
// it as a CSV file, and can mark the listed registrations attended.
type ParticipantsView struct {
	activityID int
	export     api.ParticipantExport
	loading    bool
	loadErr    error
	saving     bool
	updating   bool
	seq        uint64
}

// NewParticipantsView creates the participant list screen for one
// activity.
func NewParticipantsView(activityID int) *ParticipantsView {
	return &ParticipantsView{activityID: activityID}
}

func (v *ParticipantsView) Title() string { return "Participants" }

func (v *ParticipantsView) Init(env *Env) tea.Cmd {
	return v.load(env)
}

func (v *ParticipantsView) load(env *Env) tea.Cmd {
	v.seq = nextFetchSeq()
	v.loading = true
	v.loadErr = nil
	id := v.activityID
	return fetch(env, v.seq, func(ctx context.Context) (interface{}, error) {
		return env.Client.ExportParticipants(ctx, id)
	})
}

func (v *ParticipantsView) Update(env *Env, msg tea.Msg) (View, tea.Cmd) {
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
		if export, ok := msg.data.(*api.ParticipantExport); ok {
			v.export = *export
		}
		return v, nil

	case savedMsg:
		v.saving = false
		if msg.err != nil {
			return v, errorToast(msg.err)
		}
		return v, ShowToast(ToastSuccess, "Saved "+msg.filename)

	case attendanceMsg:
		v.updating = false
		if msg.gen != env.Session.Generation() {
			return v, nil
		}
		if msg.err != nil {
			return v, errorToast(msg.err)
		}
		return v, tea.Batch(
			ShowToast(ToastSuccess, fmt.Sprintf("Marked %d registration(s) as attended", msg.count)),
			v.load(env),
		)

	case tea.KeyMsg:
		if v.loading || v.saving || v.updating {
			return v, nil
		}
		switch msg.String() {
		case "w":
			return v.save()
		case "a":
			return v.markAttended(env)
		case "r":
			return v, v.load(env)
		}
	}
	return v, nil
}

// registrationIDs parses the id column out of the export rows.
func (v *ParticipantsView) registrationIDs() []int {
	r := csv.NewReader(strings.NewReader(v.export.CSVData))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil || len(rows) < 2 {
		return nil
	}
	var ids []int
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// markAttended batch-updates every listed registration to attended.
func (v *ParticipantsView) markAttended(env *Env) (View, tea.Cmd) {
	ids := v.registrationIDs()
	if len(ids) == 0 {
		return v, ShowToast(ToastInfo, "No registrations to update")
	}
	v.updating = true

	gen := env.Session.Generation()
	return v, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		count, err := env.Client.UpdateRegistrationStatuses(ctx, ids, api.RegistrationStatusAttended)
		return attendanceMsg{gen: gen, count: count, err: err}
	}
}

func (v *ParticipantsView) save() (View, tea.Cmd) {
	if v.export.Filename == "" {
		return v, nil
	}
	v.saving = true

	filename := v.export.Filename
	data := v.export.CSVData
	return v, func() tea.Msg {
		if err := os.WriteFile(filename, []byte(data), 0644); err != nil {
			return savedMsg{err: errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to save export", err)}
		}
		return savedMsg{filename: filename}
	}
}

func (v *ParticipantsView) View(env *Env) string {
	var b strings.Builder
	b.WriteString(env.Styles.Title.Render("Participants"))
	b.WriteString("\n")

	switch {
	case v.loading:
		b.WriteString(env.Styles.Muted.Render("Loading participants..."))
	case v.loadErr != nil:
		b.WriteString(env.Styles.Error.Render("Could not load participants"))
		b.WriteString("\n")
		b.WriteString(env.Styles.Muted.Render(v.loadErr.Error()))
		b.WriteString("\n")
		b.WriteString(env.Styles.Help.Render("r retry"))
	default:
		b.WriteString(env.Styles.Subtitle.Render(v.export.Activity.Title))
		b.WriteString("\n")

		lines := strings.Split(strings.TrimSpace(v.export.CSVData), "\n")
		if len(lines) <= 1 {
			b.WriteString(env.Styles.Muted.Render("No participants yet."))
			b.WriteString("\n")
		}
		for i, line := range lines {
			cols := strings.ReplaceAll(line, ",", "  ")
			if i == 0 {
				b.WriteString(env.Styles.Label.Render(cols))
			} else {
				b.WriteString(cols)
			}
			b.WriteString("\n")
		}

		switch {
		case v.saving:
			b.WriteString(env.Styles.Muted.Render("Saving..."))
		case v.updating:
			b.WriteString(env.Styles.Muted.Render("Updating..."))
		default:
			b.WriteString(env.Styles.Help.Render("a mark attended • w write CSV file • r refresh • esc back"))
		}
	}
	return b.String()
}
