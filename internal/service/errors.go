package service

import (
	"errors"

	"github.com/inkwell-api/internal/validation"
)

// Error kinds returned by services. Handlers map them to status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
)

// ErrSlugTaken is returned when a concurrent insert claimed the resolved slug
var ErrSlugTaken = &DomainError{
	Kind:    ErrConflict,
	Message: "An article with this slug was just created, please try again",
}

// DomainError carries a user-facing message for one of the error kinds
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches the error kind so callers can use errors.Is(err, ErrConflict)
func (e *DomainError) Is(target error) bool {
	return target == e.Kind
}

// ValidationError is returned when a request payload is rejected
type ValidationError struct {
	Message string
	Fields  []validation.ValidationError
}

func (e *ValidationError) Error() string {
	return e.Message
}

func notFound(message string) error {
	return &DomainError{Kind: ErrNotFound, Message: message}
}

func conflict(message string) error {
	return &DomainError{Kind: ErrConflict, Message: message}
}

func forbidden(message string) error {
	return &DomainError{Kind: ErrForbidden, Message: message}
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}

// fromValidation wraps validator output, or returns nil when there is none
func fromValidation(errs []validation.ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Message: errs[0].Message, Fields: errs}
}
