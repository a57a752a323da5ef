package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrTaskNotFound is returned by stores when an id does not resolve to a
	// record, including ids that cannot be parsed into the store's key type.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTask is matched by every *ValidationError via errors.Is.
	ErrInvalidTask = errors.New("invalid task")
)

// TaskPatch carries the client-settable fields of a task. A nil field means
// the caller did not supply it.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *time.Time
}

// Empty reports whether no field is supplied.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidTask
}

// Details returns one human readable line per offending field.
func (e *ValidationError) Details() []string {
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.String()
	}
	return out
}

// Validate checks the supplied fields. With requireTitle set, a missing title
// is an error; a supplied but blank title is always an error.
func (p TaskPatch) Validate(requireTitle bool) error {
	var fields []FieldError

	switch {
	case p.Title == nil && requireTitle:
		fields = append(fields, FieldError{Field: "title", Message: "title is required"})
	case p.Title != nil && normalizeTitle(*p.Title) == "":
		fields = append(fields, FieldError{Field: "title", Message: "title must not be empty"})
	}

	if p.Status != nil && !TaskStatus(*p.Status).Valid() {
		fields = append(fields, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("%q is not one of: pending, in-progress, completed", *p.Status),
		})
	}

	if p.Priority != nil && !TaskPriority(*p.Priority).Valid() {
		fields = append(fields, FieldError{
			Field:   "priority",
			Message: fmt.Sprintf("%q is not one of: low, medium, high", *p.Priority),
		})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func normalizeTitle(s string) string {
	return strings.TrimSpace(s)
}
