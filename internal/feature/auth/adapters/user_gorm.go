// Package adapters provides the repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resume_backend/internal/feature/auth/domain/entity"
	"resume_backend/internal/feature/auth/usecase"
	"resume_backend/internal/platform/db"
)

// userGorm is the gorm implementation of usecase.UserRepository.
// Counter and token mutations are single UPDATE statements so concurrent
// requests never lose an increment or consume a token twice.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a userGorm on the given connection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create adds the user. It returns usecase.ErrEmailAlreadyExists when the
// email is taken.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail returns usecase.ErrUserNotFound if no user has the email.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID returns usecase.ErrUserNotFound if no user has the ID.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// RecordLoginFailure increments login_attempts and sets lock_until once the
// threshold is reached. A lock that has already expired is treated as a fresh
// start: the counter becomes 1.
func (r *userGorm) RecordLoginFailure(ctx context.Context, id uint, now time.Time, maxAttempts int, lockUntil time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]any{
		"login_attempts": gorm.Expr("CASE WHEN "+lockExpired+" THEN 1 ELSE login_attempts + 1 END", now),
		"lock_until":     lockUntilExpr(now, maxAttempts, lockUntil),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

const lockExpired = "lock_until IS NOT NULL AND lock_until <= ?"

// lockUntilExpr builds the lock_until assignment. Every branch is a bare
// parameter, NULL or the column itself so Postgres resolves the CASE to the
// column type.
func lockUntilExpr(now time.Time, maxAttempts int, lockUntil time.Time) clause.Expr {
	if maxAttempts <= 1 {
		return gorm.Expr("CASE WHEN "+lockExpired+" THEN ? WHEN login_attempts + 1 >= ? THEN ? ELSE lock_until END",
			now, lockUntil, maxAttempts, lockUntil)
	}
	return gorm.Expr("CASE WHEN "+lockExpired+" THEN NULL WHEN login_attempts + 1 >= ? THEN ? ELSE lock_until END",
		now, maxAttempts, lockUntil)
}

// RecordLoginSuccess clears the counter and lock and records the login time.
func (r *userGorm) RecordLoginSuccess(ctx context.Context, id uint, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]any{
		"login_attempts": 0,
		"lock_until":     nil,
		"last_login":     now,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// ConsumeVerificationToken verifies the holder of an unexpired digest.
func (r *userGorm) ConsumeVerificationToken(ctx context.Context, digest string, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("verification_token = ? AND verification_token_expires > ?", digest, now).
		Updates(map[string]any{
			"is_verified":                true,
			"verification_token":         nil,
			"verification_token_expires": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrInvalidOrExpiredToken
	}
	return nil
}

// SetResetToken replaces any previous reset token of the user.
func (r *userGorm) SetResetToken(ctx context.Context, id uint, digest string, expires time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(map[string]any{
		"reset_password_token":   digest,
		"reset_password_expires": expires,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// ConsumeResetToken stores the new hash for the holder of an unexpired digest
// and clears the token and lockout state.
func (r *userGorm) ConsumeResetToken(ctx context.Context, digest, passwordHash string, now time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).
		Where("reset_password_token = ? AND reset_password_expires > ?", digest, now).
		Updates(map[string]any{
			"password":               passwordHash,
			"reset_password_token":   nil,
			"reset_password_expires": nil,
			"login_attempts":         0,
			"lock_until":             nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrInvalidOrExpiredToken
	}
	return nil
}
