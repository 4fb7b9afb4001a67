// Package forms declares the submission types bound from HTML forms and
// translates validator failures into per-field messages for re-rendering.
package forms

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"taskflow/internal/constants"
	"taskflow/internal/models"
	"taskflow/internal/services"
)

// FormErrorKey collects errors that belong to the submission as a whole
// rather than to one field, such as an unparseable value.
const FormErrorKey = "form"

// FieldErrors maps a form field name to its validation messages.
type FieldErrors map[string][]string

// Add appends a message for field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any field has an error.
func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// RegistrationForm validates a new account submission.
type RegistrationForm struct {
	Username        string `form:"username" binding:"required,min=2,max=20"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

// LoginForm validates a login submission. Deliberately no existence check:
// authentication failures surface as one generic message.
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// TaskForm validates a task create/update submission. AssignedTo is the
// sentinel convention: 0 means no assignee.
type TaskForm struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	Status      string `form:"status" binding:"required,oneof=pending in_progress completed"`
	AssignedTo  uint64 `form:"assigned_to"`
}

// NewTaskForm returns a TaskForm with the default status preselected.
func NewTaskForm() TaskForm {
	return TaskForm{Status: string(models.TaskStatusPending)}
}

// TaskFormFromTask prepopulates an edit form from an existing task. A NULL
// assignee becomes the 0 sentinel so the dropdown round-trips.
func TaskFormFromTask(task *models.Task) TaskForm {
	f := TaskForm{
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		AssignedTo:  constants.NoAssigneeSentinel,
	}
	if task.AssignedToID != nil {
		f.AssignedTo = *task.AssignedToID
	}
	return f
}

// Input converts the form into the service-layer input.
func (f TaskForm) Input() services.TaskInput {
	return services.TaskInput{
		Title:       f.Title,
		Description: f.Description,
		Status:      models.TaskStatus(f.Status),
		AssignedTo:  f.AssignedTo,
	}
}

// Translate converts a gin binding error into FieldErrors.
func Translate(err error) FieldErrors {
	fieldErrors := FieldErrors{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors.Add(FormErrorKey, "Invalid form submission.")
		return fieldErrors
	}

	for _, fe := range validationErrors {
		fieldErrors.Add(snakeCase(fe.Field()), messageFor(fe))
	}
	return fieldErrors
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	case "eqfield":
		return "Passwords must match."
	case "oneof":
		return "Not a valid choice."
	}
	return "Invalid value."
}

// snakeCase maps a struct field name to its form field name,
// e.g. ConfirmPassword -> confirm_password.
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
