// Package forms validates user input before it leaves the client.
// Server-side validation is authoritative; these checks exist to give
// immediate feedback without a round trip.
package forms

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Stuart-0728/cqnu/internal/api"
	"github.com/Stuart-0728/cqnu/internal/errors"
)

var validate = validator.New()

// LoginForm is the login view's input.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// RegisterForm is the account sign-up input. ConfirmPassword never
// leaves the client.
type RegisterForm struct {
	Username        string `validate:"required,min=3,max=64"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
	FullName        string `validate:"required"`
	StudentID       string `validate:"omitempty,numeric"`
	Phone           string `validate:"omitempty,min=5,max=20"`
	Department      string
	Major           string
}

// Request converts the validated form into the API payload.
func (f RegisterForm) Request() api.RegisterRequest {
	return api.RegisterRequest{
		Username:   f.Username,
		Email:      f.Email,
		Password:   f.Password,
		FullName:   f.FullName,
		StudentID:  f.StudentID,
		Department: f.Department,
		Major:      f.Major,
		Phone:      f.Phone,
	}
}

// ActivityForm is the admin create/edit activity input. Times are
// entered as strings and parsed on validation.
type ActivityForm struct {
	Title           string `validate:"required,max=200"`
	Description     string
	Location        string `validate:"required"`
	StartTime       string `validate:"required"`
	EndTime         string `validate:"required"`
	Deadline        string `validate:"required"`
	MaxParticipants int    `validate:"min=0"`
	Status          string `validate:"required,oneof=draft active completed cancelled"`
}

const timeLayout = "2006-01-02 15:04"

// Draft parses the form into an API payload, enforcing time ordering:
// start before end, deadline not after start.
func (f ActivityForm) Draft() (api.ActivityDraft, error) {
	if err := Validate(f); err != nil {
		return api.ActivityDraft{}, err
	}

	start, err := time.Parse(timeLayout, f.StartTime)
	if err != nil {
		return api.ActivityDraft{}, errors.New(errors.ErrCodeFormFieldInvalid,
			fmt.Sprintf("start time must look like %q", timeLayout))
	}
	end, err := time.Parse(timeLayout, f.EndTime)
	if err != nil {
		return api.ActivityDraft{}, errors.New(errors.ErrCodeFormFieldInvalid,
			fmt.Sprintf("end time must look like %q", timeLayout))
	}
	deadline, err := time.Parse(timeLayout, f.Deadline)
	if err != nil {
		return api.ActivityDraft{}, errors.New(errors.ErrCodeFormFieldInvalid,
			fmt.Sprintf("deadline must look like %q", timeLayout))
	}

	if !start.Before(end) {
		return api.ActivityDraft{}, errors.New(errors.ErrCodeFormFieldInvalid,
			"start time must be before end time")
	}
	if deadline.After(start) {
		return api.ActivityDraft{}, errors.New(errors.ErrCodeFormFieldInvalid,
			"registration deadline must not be after the start time")
	}

	return api.ActivityDraft{
		Title:                f.Title,
		Description:          f.Description,
		Location:             f.Location,
		StartTime:            start,
		EndTime:              end,
		RegistrationDeadline: deadline,
		MaxParticipants:      f.MaxParticipants,
		Status:               f.Status,
	}, nil
}

// Validate runs struct validation and converts the first failure into
// an AppError the views can display directly.
func Validate(form interface{}) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !stderrors.As(err, &ve) || len(ve) == 0 {
		return errors.Wrap(errors.ErrCodeFormFieldInvalid, "validation failed", err)
	}
	return fieldError(ve[0])
}

func fieldError(fe validator.FieldError) error {
	field := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return errors.NewFieldRequiredError(field)
	case "email":
		return errors.New(errors.ErrCodeFormFieldInvalid, field+" must be a valid email address")
	case "min":
		return errors.New(errors.ErrCodeFormFieldInvalid,
			fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
	case "max":
		return errors.New(errors.ErrCodeFormFieldInvalid,
			fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	case "numeric":
		return errors.New(errors.ErrCodeFormFieldInvalid, field+" must contain only digits")
	case "eqfield":
		return errors.NewPasswordMismatchError()
	case "oneof":
		return errors.New(errors.ErrCodeFormFieldInvalid,
			fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
	default:
		return errors.New(errors.ErrCodeFormFieldInvalid,
			fmt.Sprintf("%s is invalid (%s)", field, fe.Tag()))
	}
}

// humanize turns a Go field name into the label users saw on the form.
func humanize(field string) string {
	var b strings.Builder
	runes := []rune(field)
	for i, r := range runes {
		if i > 0 && r >= 'A' && r <= 'Z' && runes[i-1] >= 'a' && runes[i-1] <= 'z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
