package validators

import (
	"errors"
	"sort"
	"strings"

	"github.com/MKhiriev/go-membership/models"
)

// ErrUnsupportedType is returned by Validate for values it has no rules for.
var ErrUnsupportedType = errors.New("unsupported type for validation")

// User-facing validation messages.
const (
	MsgRequired          = "This field is required."
	MsgInvalidEmail      = "Enter a valid email address."
	MsgTooLong           = "Ensure this field has no more than %d characters."
	MsgPasswordsMismatch = "The two password fields didn't match."
	MsgEmailTaken        = "A user with that email already exists."
	MsgEmailNotAssigned  = "The e-mail address is not assigned to any user account"
)

// ValidationError collects field and non-field validation messages.
type ValidationError struct {
	Fields   models.FieldErrors
	NonField []string
}

// NewValidationError returns an empty [ValidationError].
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: models.FieldErrors{}}
}

// FieldError returns a [ValidationError] with one message on field.
func FieldError(field, msg string) *ValidationError {
	e := NewValidationError()
	e.AddField(field, msg)
	return e
}

// NonFieldError returns a [ValidationError] with one non-field message.
func NonFieldError(msg string) *ValidationError {
	e := NewValidationError()
	e.AddNonField(msg)
	return e
}

func (e *ValidationError) AddField(field, msg string) {
	if e.Fields == nil {
		e.Fields = models.FieldErrors{}
	}
	e.Fields.Add(field, msg)
}

func (e *ValidationError) AddNonField(msg string) {
	e.NonField = append(e.NonField, msg)
}

// Merge appends every message of other to e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		for _, m := range msgs {
			e.AddField(field, m)
		}
	}
	e.NonField = append(e.NonField, other.NonField...)
}

// Empty reports whether no message was collected.
func (e *ValidationError) Empty() bool {
	return e == nil || (len(e.Fields) == 0 && len(e.NonField) == 0)
}

// Err returns e, or nil when it is empty.
func (e *ValidationError) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// FirstMessage returns the first non-field message, or else the first
// message of the alphabetically first field.
func (e *ValidationError) FirstMessage() string {
	if e.Empty() {
		return ""
	}
	if len(e.NonField) > 0 {
		return e.NonField[0]
	}
	fields := e.fieldNames()
	return e.Fields[fields[0]][0]
}

// Only drops every field not listed in fields. Non-field messages are kept.
func (e *ValidationError) Only(fields ...string) {
	if len(fields) == 0 || e == nil {
		return
	}
	keep := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		keep[f] = struct{}{}
	}
	for f := range e.Fields {
		if _, ok := keep[f]; !ok {
			delete(e.Fields, f)
		}
	}
}

func (e *ValidationError) fieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields)+1)
	if len(e.NonField) > 0 {
		parts = append(parts, strings.Join(e.NonField, " "))
	}
	for _, f := range e.fieldNames() {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
