package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Role is the stored authorization level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const (
	MaxNameLength     = 100
	MaxUsernameLength = 50
	MinPasswordLength = 6
)

// User is the local profile row. ID equals the identity provider's subject id.
type User struct {
	ID         uuid.UUID
	Username   string
	Name       string
	Role       Role
	ProfilePic string
}

// ValidateName checks a display name: 1 to 100 characters after trimming.
func ValidateName(name string) error {
	return validateLength("name", name, MaxNameLength)
}

// ValidateUsername checks a username: 1 to 50 characters after trimming.
func ValidateUsername(username string) error {
	return validateLength("username", username, MaxUsernameLength)
}

// ValidatePassword enforces the provider's minimum password length.
func ValidatePassword(password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// ValidateEmail performs a shallow shape check; the provider is authoritative.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 || strings.ContainsAny(email, " \t\r\n") {
		return &ValidationError{Field: "email", Message: "email is invalid"}
	}
	return nil
}

func validateLength(field, value string, max int) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return &ValidationError{Field: field, Message: field + " cannot be empty"}
	}
	if utf8.RuneCountInString(trimmed) > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be between 1 and %d characters", field, max),
		}
	}
	return nil
}
