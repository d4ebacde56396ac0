// Package apperror defines the application-wide error taxonomy: a single
// error type carrying a stable name, a machine code, an HTTP-class status,
// and optional structured metadata. The transport boundary maps these to
// wire responses; services let them propagate unchanged.
package apperror

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind separates expected runtime conditions from bugs. Both kinds
// propagate the same way; the boundary logs programmer errors louder.
type Kind string

const (
	KindOperational Kind = "operational"
	KindProgrammer  Kind = "programmer"
)

// Error is the one error type used across modules.
type Error struct {
	ID         string
	Kind       Kind
	Name       string // stable dotted identifier, e.g. canopy.1.error.authentication.unauthenticated
	Code       string // machine slug, e.g. unauthenticated
	Status     int    // HTTP-class status the boundary should respond with
	Message    string
	OccurredAt time.Time
	Meta       map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s): %s", e.Name, e.Code, e.Message)
}

// Operational returns an operational error: an expected condition the
// caller or client can act on (bad input, missing resource, conflict).
func Operational(name, code string, status int, message string) *Error {
	return &Error{
		ID:         uuid.NewString(),
		Kind:       KindOperational,
		Name:       name,
		Code:       code,
		Status:     status,
		Message:    message,
		OccurredAt: time.Now().UTC(),
	}
}

// Programmer returns a programmer error: an invariant violation that
// indicates a bug rather than a user-facing condition. Status is always 500.
func Programmer(name, code, message string) *Error {
	return &Error{
		ID:         uuid.NewString(),
		Kind:       KindProgrammer,
		Name:       name,
		Code:       code,
		Status:     500,
		Message:    message,
		OccurredAt: time.Now().UTC(),
	}
}

// WithMeta attaches a metadata key/value and returns the error for chaining.
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[key] = value
	return e
}

// IsOperational reports whether e is an expected runtime condition.
func (e *Error) IsOperational() bool { return e.Kind == KindOperational }
