package domain

import (
	"errors"
	"fmt"
)

// Failure taxonomy. Callers wrap these with fmt.Errorf("%w: ...") and
// branch with errors.Is.
var (
	// ErrConnection marks an unreachable store or service.
	ErrConnection = errors.New("connection failure")
	// ErrNotFound marks a missing document or user.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks rejected leave-day input.
	ErrValidation = errors.New("validation failure")
	// ErrBackend marks a failed generation or embedding call.
	ErrBackend = errors.New("backend failure")
	// ErrParse marks malformed numeric or tabular input.
	ErrParse = errors.New("parse failure")
)

// UserError carries a message fit for direct display while still
// matching its failure kind under errors.Is.
type UserError struct {
	Kind    error
	Message string
}

func (e *UserError) Error() string { return e.Message }
func (e *UserError) Unwrap() error { return e.Kind }

// Errorf builds a UserError of the given kind.
func Errorf(kind error, format string, args ...any) error {
	return &UserError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
