// Package profile provides the profile update use case.
package profile

import "errors"

// Sentinel errors for profile use case operations.
var (
	// ErrNoFieldsToUpdate indicates an update that sets nothing.
	ErrNoFieldsToUpdate = errors.New("no fields to update provided")

	// ErrUsernameTaken indicates that another user already has the requested username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound indicates that the caller has no local user row.
	ErrUserNotFound = errors.New("user not found")
)
