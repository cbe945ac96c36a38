// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountLocked is returned while the account's lock window is open.
	ErrAccountLocked = errors.New("account is locked")

	// ErrInvalidOrExpiredToken is returned when a verification or reset token
	// is unknown, already consumed or past its expiry.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// ErrValidation is returned for malformed input such as a short password.
	ErrValidation = errors.New("validation failed")
)
