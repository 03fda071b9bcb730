package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"studioops/internal/domain"
	"studioops/internal/services"
)

// SessionForm is the create/edit dialog for one session. Its fields are
// seeded through the composer: a set editing target replaces every field,
// no value survives from a previous target.
type SessionForm struct {
	editing *domain.SessionRecord
	fields  formFields
	form    *huh.Form
}

// formFields binds the huh inputs. String-backed where huh needs strings.
type formFields struct {
	date         string
	isEvent      bool
	memberName   string
	note         string
	sessionIndex string
	status       string
	time         string
	trainerName  string
	typ          string
}

// NewSessionForm builds the form, seeded for editing when a target is set
func NewSessionForm(editing *domain.SessionRecord, selectedDate string, trainers []string) *SessionForm {
	seed := services.SeedSessionForm(editing, selectedDate)

	f := &SessionForm{editing: editing}
	f.fields = formFields{
		date:         seed.SessionDate,
		isEvent:      seed.IsEvent,
		memberName:   seed.MemberName,
		note:         seed.Note,
		sessionIndex: seed.SessionIndex,
		status:       string(seed.SessionStatus),
		time:         seed.SessionTime,
		trainerName:  seed.TrainerName,
		typ:          seed.SessionType,
	}

	trainerOptions := make([]huh.Option[string], 0, len(trainers))
	for _, t := range trainers {
		trainerOptions = append(trainerOptions, huh.NewOption(t, t))
	}

	var trainerField huh.Field = huh.NewInput().
		Title("Trainer").
		Value(&f.fields.trainerName).
		Validate(requiredField("trainer"))
	if len(trainerOptions) > 0 {
		trainerField = huh.NewSelect[string]().
			Title("Trainer").
			Options(trainerOptions...).
			Value(&f.fields.trainerName)
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&f.fields.date).
				Validate(requiredField("date")),
			huh.NewInput().
				Title("Time").
				Placeholder("HH:MM").
				Value(&f.fields.time).
				Validate(requiredField("time")),
			trainerField,
			huh.NewInput().
				Title("Member").
				Value(&f.fields.memberName).
				Validate(requiredField("member")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Type").
				Description("PT, OT, or any tag").
				Value(&f.fields.typ),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Completed", string(domain.StatusCompleted)),
					huh.NewOption("Cancelled", string(domain.StatusCancelled)),
					huh.NewOption("No show", string(domain.StatusNoShow)),
					huh.NewOption("Payment", string(domain.StatusPayment)),
				).
				Value(&f.fields.status),
			huh.NewInput().
				Title("Progress index").
				Placeholder("e.g. 15/20").
				Value(&f.fields.sessionIndex),
			huh.NewConfirm().
				Title("Event ticket").
				Value(&f.fields.isEvent),
			huh.NewText().
				Title("Note").
				Value(&f.fields.note),
		),
	)

	return f
}

func requiredField(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return domain.ErrMissingField(name)
		}
		return nil
	}
}

// Init starts the underlying huh form
func (f *SessionForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update forwards messages to the form
func (f *SessionForm) Update(msg tea.Msg) tea.Cmd {
	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}
	return cmd
}

// Done reports whether the form was submitted or aborted
func (f *SessionForm) Done() bool {
	return f.form.State == huh.StateCompleted || f.form.State == huh.StateAborted
}

// Aborted reports whether the user cancelled
func (f *SessionForm) Aborted() bool {
	return f.form.State == huh.StateAborted
}

// Editing returns the edit target, nil for a create
func (f *SessionForm) Editing() *domain.SessionRecord {
	return f.editing
}

// Payload builds the request body from the submitted fields
func (f *SessionForm) Payload() domain.SessionCreate {
	payload := domain.SessionCreate{
		IsEvent:       f.fields.isEvent,
		MemberName:    f.fields.memberName,
		Note:          f.fields.note,
		SessionDate:   f.fields.date,
		SessionIndex:  f.fields.sessionIndex,
		SessionStatus: domain.SessionStatus(f.fields.status),
		SessionTime:   f.fields.time,
		SessionType:   f.fields.typ,
		TrainerName:   f.fields.trainerName,
	}
	if f.editing != nil {
		payload.MemberKey = f.editing.MemberKey
		payload.RegistrationType = f.editing.RegistrationType
	}
	return payload
}

// View renders the form
func (f *SessionForm) View() string {
	return f.form.View()
}
