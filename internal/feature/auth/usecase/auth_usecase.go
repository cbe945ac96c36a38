package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resume_backend/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength is the minimum number of characters in a password.
	minPasswordLength = 8

	// tokenBytes is the entropy of verification and reset tokens.
	tokenBytes = 32
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailAlreadyExists on a duplicate email.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by email. It returns ErrUserNotFound if absent.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID. It returns ErrUserNotFound if absent.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// RecordLoginFailure increments the attempt counter in one statement and
	// sets LockUntil to lockUntil when the counter reaches maxAttempts.
	// A lock that expired before now is cleared and the counter restarts at 1.
	RecordLoginFailure(ctx context.Context, id uint, now time.Time, maxAttempts int, lockUntil time.Time) error

	// RecordLoginSuccess resets the counter, clears the lock and stores now as LastLogin.
	RecordLoginSuccess(ctx context.Context, id uint, now time.Time) error

	// ConsumeVerificationToken marks the holder of digest as verified and clears
	// the token. It returns ErrInvalidOrExpiredToken when no unexpired holder exists.
	ConsumeVerificationToken(ctx context.Context, digest string, now time.Time) error

	// SetResetToken stores a password-reset digest with its expiry.
	SetResetToken(ctx context.Context, id uint, digest string, expires time.Time) error

	// ConsumeResetToken replaces the password hash of the holder of digest and
	// clears the token and lockout state. It returns ErrInvalidOrExpiredToken
	// when no unexpired holder exists.
	ConsumeResetToken(ctx context.Context, digest, passwordHash string, now time.Time) error
}

// JWTGenerator defines the interface for JWT token generation.
type JWTGenerator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(userID uint, email string) (string, error)
}

// Mailer delivers one-time tokens to users.
type Mailer interface {
	SendVerification(ctx context.Context, to, token string) error
	SendPasswordReset(ctx context.Context, to, token string) error
}

// Policy holds the lockout and token-lifetime settings.
type Policy struct {
	MaxLoginAttempts int
	LockDuration     time.Duration
	VerificationTTL  time.Duration
	ResetTTL         time.Duration
	BcryptCost       int
	// Clock returns the current time. Nil means time.Now.
	Clock func() time.Time
}

// DefaultPolicy returns the production defaults.
func DefaultPolicy() Policy {
	return Policy{
		MaxLoginAttempts: 5,
		LockDuration:     2 * time.Hour,
		VerificationTTL:  24 * time.Hour,
		ResetTTL:         time.Hour,
		BcryptCost:       bcrypt.DefaultCost,
	}
}

// RegisterInput is the data required to create an account.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	Token string
	User  *entity.User
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
	mailer       Mailer
	policy       Policy
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator, mailer Mailer, policy Policy) *authUsecase {
	if policy.Clock == nil {
		policy.Clock = time.Now
	}
	if policy.BcryptCost == 0 {
		policy.BcryptCost = bcrypt.DefaultCost
	}
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
		mailer:       mailer,
		policy:       policy,
	}
}

// validatePassword checks the password against the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, minPasswordLength)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newToken returns a random hex token and the digest stored in its place.
func newToken() (raw, digest string, err error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}
	raw = hex.EncodeToString(b)
	return raw, digestToken(raw), nil
}

func digestToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (u *authUsecase) now() time.Time {
	return u.policy.Clock().UTC()
}

// Register creates an unverified account, mails the verification token and
// returns a session token.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.policy.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	raw, digest, err := newToken()
	if err != nil {
		return nil, err
	}
	expires := u.now().Add(u.policy.VerificationTTL)

	user := &entity.User{
		Email:                    email,
		Password:                 string(hashed),
		Name:                     strings.TrimSpace(in.Name),
		VerificationToken:        &digest,
		VerificationTokenExpires: &expires,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Delivery failure does not undo the registration; the user can still log in.
	if err := u.mailer.SendVerification(ctx, user.Email, raw); err != nil {
		slog.Warn("verification mail not sent", "error", err, "user_id", user.ID)
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login authenticates the user and returns a session token on success.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	now := u.now()
	if user.IsLocked(now) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, fmt.Errorf("failed to compare password: %w", err)
		}
		lockUntil := now.Add(u.policy.LockDuration)
		if rerr := u.users.RecordLoginFailure(ctx, user.ID, now, u.policy.MaxLoginAttempts, lockUntil); rerr != nil {
			return nil, fmt.Errorf("failed to record login failure: %w", rerr)
		}
		return nil, ErrInvalidCredentials
	}

	if err := u.users.RecordLoginSuccess(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LoginAttempts = 0
	user.LockUntil = nil
	user.LastLogin = &now

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// VerifyEmail consumes a verification token. A token works exactly once.
func (u *authUsecase) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidOrExpiredToken
	}
	return u.users.ConsumeVerificationToken(ctx, digestToken(token), u.now())
}

// RequestPasswordReset stores a fresh reset token for the account and mails it.
func (u *authUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	raw, digest, err := newToken()
	if err != nil {
		return err
	}
	if err := u.users.SetResetToken(ctx, user.ID, digest, u.now().Add(u.policy.ResetTTL)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if err := u.mailer.SendPasswordReset(ctx, user.Email, raw); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}
	return nil
}

// ResetPassword sets a new password using a reset token. A token works exactly once.
func (u *authUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	if token == "" {
		return ErrInvalidOrExpiredToken
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), u.policy.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return u.users.ConsumeResetToken(ctx, digestToken(token), string(hashed), u.now())
}
