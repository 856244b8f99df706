// Package account provides registration, sign-in, current-user lookup and
// password rotation. Accounts live in two stores: the identity provider holds
// credentials, the users table holds profile and role. Register keeps them in
// step: a local row exists iff the provider account exists.
package account

import "errors"

// Sentinel errors for account use case operations.
var (
	// ErrUsernameTaken indicates that another local user already has the username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken indicates that the provider already holds an account for the email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrSignUpRejected indicates any other provider refusal during sign-up.
	ErrSignUpRejected = errors.New("sign-up rejected by provider")

	// ErrInvalidCredentials indicates a rejected email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSignInRejected indicates any other provider refusal during sign-in.
	ErrSignInRejected = errors.New("sign-in rejected by provider")

	// ErrNewPasswordRequired indicates a password reset without a new password.
	ErrNewPasswordRequired = errors.New("new password is required")

	// ErrInvalidOldPassword indicates the old password did not verify.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrPasswordRejected indicates the provider refused the new password.
	ErrPasswordRejected = errors.New("new password rejected by provider")

	// ErrProfileMissing indicates a provider identity without a local users row.
	ErrProfileMissing = errors.New("local user record missing")
)
