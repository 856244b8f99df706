package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrConflict indicates a uniqueness violation (username, email).
	ErrConflict = errors.New("already exists")

	// ErrInvalidReference indicates a foreign key points at a row that does not exist.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrReferenced indicates a row cannot be removed while other rows point at it.
	ErrReferenced = errors.New("still referenced")

	// ErrUnauthorized indicates a missing or rejected credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates a valid identity without the required role.
	ErrForbidden = errors.New("forbidden")
)

// Identity provider errors. Adapters translate provider responses into these.
var (
	// ErrInvalidToken indicates the bearer credential was rejected or has no subject.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidCredentials indicates an email/password pair was rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken indicates the provider already holds an account for the email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrProviderRejected indicates any other 4xx answer from the provider.
	ErrProviderRejected = errors.New("provider rejected request")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
