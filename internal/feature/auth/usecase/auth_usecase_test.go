package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"resume_backend/internal/feature/auth/adapters"
	"resume_backend/internal/feature/auth/domain/entity"
	"resume_backend/internal/feature/auth/usecase"
	"resume_backend/internal/platform/db"
)

// mockJWTGenerator is a mock implementation of JWTGenerator interface.
type mockJWTGenerator struct {
	GenerateTokenFunc func(userID uint, email string) (string, error)
}

func (m *mockJWTGenerator) GenerateToken(userID uint, email string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID, email)
	}
	return "mock-jwt-token", nil
}

// recordingMailer captures the raw tokens handed to it.
type recordingMailer struct {
	mu           sync.Mutex
	verification map[string]string
	reset        map[string]string
	err          error
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{verification: map[string]string{}, reset: map[string]string{}}
}

func (m *recordingMailer) SendVerification(_ context.Context, to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verification[to] = token
	return m.err
}

func (m *recordingMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset[to] = token
	return m.err
}

// fakeClock is a settable time source.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func testPolicy(c *fakeClock) usecase.Policy {
	p := usecase.DefaultPolicy()
	p.BcryptCost = bcrypt.MinCost
	p.Clock = c.Now
	return p
}

func ctx() context.Context { return context.Background() }

// authService is the method set the handler consumes.
type authService interface {
	Register(context.Context, usecase.RegisterInput) (*usecase.AuthResult, error)
	Login(context.Context, string, string) (*usecase.AuthResult, error)
	VerifyEmail(context.Context, string) error
	RequestPasswordReset(context.Context, string) error
	ResetPassword(context.Context, string, string) error
}

type fixture struct {
	uc     authService
	users  usecase.UserRepository
	mailer *recordingMailer
	clock  *fakeClock
}

// newFixture wires the usecase to a real gorm repository over in-memory SQLite.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb, &entity.User{}))

	users := adapters.NewUserGorm(gdb)
	mailer := newRecordingMailer()
	clock := newClock()
	return &fixture{
		uc:     usecase.NewAuthUsecase(users, &mockJWTGenerator{}, mailer, testPolicy(clock)),
		users:  users,
		mailer: mailer,
		clock:  clock,
	}
}

func (f *fixture) register(t *testing.T, email string) *usecase.AuthResult {
	t.Helper()
	res, err := f.uc.Register(ctx(), usecase.RegisterInput{Email: email, Password: "pw123456", Name: "Alice"})
	require.NoError(t, err)
	return res
}

func TestAuthUsecase_Register(t *testing.T) {
	t.Run("creates an unverified user and mails a token", func(t *testing.T) {
		f := newFixture(t)

		res := f.register(t, "  Alice@X.com ")

		assert.Equal(t, "mock-jwt-token", res.Token)
		assert.Equal(t, "alice@x.com", res.User.Email)
		assert.False(t, res.User.IsVerified)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.Password), []byte("pw123456")))

		raw := f.mailer.verification["alice@x.com"]
		require.Len(t, raw, 64)
		stored, err := f.users.FindByEmail(ctx(), "alice@x.com")
		require.NoError(t, err)
		require.NotNil(t, stored.VerificationToken)
		assert.NotEqual(t, raw, *stored.VerificationToken, "raw token must not be persisted")
		require.NotNil(t, stored.VerificationTokenExpires)
		assert.True(t, stored.VerificationTokenExpires.Equal(f.clock.now.Add(24*time.Hour)))
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@x.com")

		_, err := f.uc.Register(ctx(), usecase.RegisterInput{Email: "ALICE@x.com", Password: "pw123456", Name: "A"})

		assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)
	})

	t.Run("short password", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Register(ctx(), usecase.RegisterInput{Email: "a@x.com", Password: "short", Name: "A"})

		assert.ErrorIs(t, err, usecase.ErrValidation)
	})

	t.Run("mail failure does not fail registration", func(t *testing.T) {
		f := newFixture(t)
		f.mailer.err = errors.New("smtp down")

		res := f.register(t, "a@x.com")

		assert.NotZero(t, res.User.ID)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	t.Run("success resets counters and records last login", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@x.com")
		_, err := f.uc.Login(ctx(), "alice@x.com", "wrong-password")
		require.ErrorIs(t, err, usecase.ErrInvalidCredentials)

		res, err := f.uc.Login(ctx(), "alice@x.com", "pw123456")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", res.Token)
		stored, err := f.users.FindByEmail(ctx(), "alice@x.com")
		require.NoError(t, err)
		assert.Zero(t, stored.LoginAttempts)
		require.NotNil(t, stored.LastLogin)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Login(ctx(), "nobody@x.com", "pw123456")

		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})

	t.Run("five failures lock the account for two hours", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@x.com")

		for i := 0; i < 5; i++ {
			_, err := f.uc.Login(ctx(), "alice@x.com", "wrong-password")
			require.ErrorIs(t, err, usecase.ErrInvalidCredentials, "attempt %d", i+1)
		}

		_, err := f.uc.Login(ctx(), "alice@x.com", "pw123456")
		assert.ErrorIs(t, err, usecase.ErrAccountLocked, "correct password must be refused while locked")

		f.clock.Advance(2*time.Hour + time.Second)
		res, err := f.uc.Login(ctx(), "alice@x.com", "pw123456")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("concurrent failures are all counted", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@x.com")

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = f.uc.Login(ctx(), "alice@x.com", "wrong-password")
			}()
		}
		wg.Wait()

		stored, err := f.users.FindByEmail(ctx(), "alice@x.com")
		require.NoError(t, err)
		assert.Equal(t, 4, stored.LoginAttempts)
	})
}

func TestAuthUsecase_VerifyEmail(t *testing.T) {
	t.Run("token is single use", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@x.com")
		raw := f.mailer.verification["alice@x.com"]

		require.NoError(t, f.uc.VerifyEmail(ctx(), raw))

		stored, err := f.users.FindByEmail(ctx(), "alice@x.com")
		require.NoError(t, err)
		assert.True(t, stored.IsVerified)
		assert.ErrorIs(t, f.uc.VerifyEmail(ctx(), raw), usecase.ErrInvalidOrExpiredToken)
	})

	t.Run("expired token", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@x.com")
		raw := f.mailer.verification["alice@x.com"]
		f.clock.Advance(25 * time.Hour)

		assert.ErrorIs(t, f.uc.VerifyEmail(ctx(), raw), usecase.ErrInvalidOrExpiredToken)
	})

	t.Run("empty token", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.uc.VerifyEmail(ctx(), ""), usecase.ErrInvalidOrExpiredToken)
	})
}

func TestAuthUsecase_PasswordReset(t *testing.T) {
	t.Run("reset flow replaces the password once", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@x.com")

		require.NoError(t, f.uc.RequestPasswordReset(ctx(), "alice@x.com"))
		raw := f.mailer.reset["alice@x.com"]
		require.NotEmpty(t, raw)

		require.NoError(t, f.uc.ResetPassword(ctx(), raw, "new-password"))
		assert.ErrorIs(t, f.uc.ResetPassword(ctx(), raw, "another-pass"), usecase.ErrInvalidOrExpiredToken)

		_, err := f.uc.Login(ctx(), "alice@x.com", "pw123456")
		assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
		_, err = f.uc.Login(ctx(), "alice@x.com", "new-password")
		assert.NoError(t, err)
	})

	t.Run("reset clears an active lock", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@x.com")
		for i := 0; i < 5; i++ {
			_, _ = f.uc.Login(ctx(), "alice@x.com", "wrong-password")
		}
		require.NoError(t, f.uc.RequestPasswordReset(ctx(), "alice@x.com"))

		require.NoError(t, f.uc.ResetPassword(ctx(), f.mailer.reset["alice@x.com"], "new-password"))

		_, err := f.uc.Login(ctx(), "alice@x.com", "new-password")
		assert.NoError(t, err)
	})

	t.Run("expired reset token", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "alice@x.com")
		require.NoError(t, f.uc.RequestPasswordReset(ctx(), "alice@x.com"))
		f.clock.Advance(time.Hour + time.Second)

		err := f.uc.ResetPassword(ctx(), f.mailer.reset["alice@x.com"], "new-password")

		assert.ErrorIs(t, err, usecase.ErrInvalidOrExpiredToken)
	})

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.uc.RequestPasswordReset(ctx(), "nobody@x.com"), usecase.ErrUserNotFound)
	})

	t.Run("short new password", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.uc.ResetPassword(ctx(), "whatever", "short"), usecase.ErrValidation)
	})
}

func TestAuthUsecase_TokenGenerationFailure(t *testing.T) {
	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb, &entity.User{}))
	clock := newClock()
	jwtErr := errors.New("signing failed")
	uc := usecase.NewAuthUsecase(adapters.NewUserGorm(gdb), &mockJWTGenerator{
		GenerateTokenFunc: func(uint, string) (string, error) { return "", jwtErr },
	}, newRecordingMailer(), testPolicy(clock))

	_, err = uc.Register(ctx(), usecase.RegisterInput{Email: "a@x.com", Password: "pw123456", Name: "A"})

	assert.ErrorIs(t, err, jwtErr)
}
