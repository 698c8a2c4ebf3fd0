package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRequestNotFound is returned when feedback references a request_id that
// was never issued (or whose snapshot has expired).
var ErrRequestNotFound = errors.New("recommendation request not found")

// ErrFeedbackNotFound is returned when no feedback has been submitted yet for
// an existing request.
var ErrFeedbackNotFound = errors.New("feedback not found")

// FieldError describes a single invalid criteria field with the offending
// value, so the caller can correct every problem in one round trip.
type FieldError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value,omitempty"`
	Message string      `json:"message"`
}

// ValidationError aggregates every invalid field found while normalizing a
// criteria payload. It is user-correctable and never fatal to the service.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return fmt.Sprintf("validation failed for fields: %s", strings.Join(names, ", "))
}

func (e *ValidationError) add(field string, value interface{}, format string, args ...interface{}) {
	e.Fields = append(e.Fields, FieldError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

func (e *ValidationError) hasErrors() bool {
	return len(e.Fields) > 0
}
