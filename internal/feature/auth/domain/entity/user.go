// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials, one-time token state and the
// login-attempt counters used for account lockout.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Name is the display name.
	Name string `gorm:"size:255;not null"`

	// IsVerified is set once the email verification token has been consumed.
	IsVerified bool `gorm:"not null;default:false"`

	// VerificationToken is the SHA-256 digest of the emailed verification token.
	VerificationToken        *string `gorm:"size:64;index"`
	VerificationTokenExpires *time.Time

	// ResetPasswordToken is the SHA-256 digest of the emailed reset token.
	ResetPasswordToken   *string `gorm:"size:64;index"`
	ResetPasswordExpires *time.Time

	// LoginAttempts counts consecutive failed logins.
	LoginAttempts int `gorm:"not null;default:0"`

	// LockUntil is set when LoginAttempts reaches the configured threshold.
	LockUntil *time.Time

	LastLogin *time.Time

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// IsLocked reports whether the account is locked at the given instant.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}
