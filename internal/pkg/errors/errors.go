package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness or constraint violation in storage.
	ErrConflict = errors.New("conflict")
)

// Kind is the closed set of failures the business-plan pipeline reports.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindRepository Kind = "repository"
	KindUnknown    Kind = "unknown"
)

// ValidationError names the first offending field of a rejected record.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// RepositoryError wraps an unexpected storage failure. Op names the repository
// call; the cause is kept for logs and never shown to end users.
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return "repository " + e.Op + " failed"
	}
	return fmt.Sprintf("repository %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

func NewRepository(op string, err error) *RepositoryError {
	return &RepositoryError{Op: op, Err: err}
}

// NotFound wraps ErrNotFound with the missing resource and id.
func NotFound(resource, id string) error {
	return fmt.Errorf("%s %q: %w", resource, id, ErrNotFound)
}

// Conflict wraps ErrConflict and keeps the storage cause reachable through errors.As.
func Conflict(op string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, errors.Join(ErrConflict, cause))
}

// KindOf classifies err into one of the pipeline's error kinds.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	if errors.Is(err, ErrNotFound) {
		return KindNotFound
	}
	if errors.Is(err, ErrConflict) {
		return KindConflict
	}
	var re *RepositoryError
	if errors.As(err, &re) {
		return KindRepository
	}
	return KindUnknown
}
