// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resume_backend/internal/app/router"
	"resume_backend/internal/config"
	authadapters "resume_backend/internal/feature/auth/adapters"
	authentity "resume_backend/internal/feature/auth/domain/entity"
	authhandler "resume_backend/internal/feature/auth/transport/handler"
	authusecase "resume_backend/internal/feature/auth/usecase"
	resumeadapters "resume_backend/internal/feature/resume/adapters"
	"resume_backend/internal/feature/resume/adapters/gemini"
	resumehandler "resume_backend/internal/feature/resume/transport/handler"
	resumeusecase "resume_backend/internal/feature/resume/usecase"
	"resume_backend/internal/platform/cache"
	"resume_backend/internal/platform/db"
	infrahttp "resume_backend/internal/platform/http"
	platformhandler "resume_backend/internal/platform/http/handler"
	jwtmw "resume_backend/internal/platform/jwt"
	"resume_backend/internal/platform/mail"
	"resume_backend/internal/render/pdfstream"
	"resume_backend/internal/shared/ratelimiter"
)

// Models lists every gorm model that is auto-migrated.
func Models() []any {
	return []any{&authentity.User{}, &resumeadapters.ResumeModel{}}
}

// OpenDatabase connects with the configured driver and migrates when enabled.
func OpenDatabase(cfg config.DB) (*gorm.DB, error) {
	var (
		gdb *gorm.DB
		err error
	)
	switch cfg.Driver {
	case db.DriverSQLite:
		gdb, err = db.OpenSQLite(cfg.Path)
	default:
		gdb, err = db.OpenDB(db.Config{
			Driver:   cfg.Driver,
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			Name:     cfg.Name,
			SSLMode:  cfg.SSLMode,
		}, cfg.ConnectTimeout)
	}
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := db.Migrate(gdb, Models()...); err != nil {
			return nil, err
		}
	}
	return gdb, nil
}

// NewMailer returns an SMTP mailer, or a log-only mailer when no relay is configured.
func NewMailer(cfg config.SMTP, app config.App) authusecase.Mailer {
	links := mail.Links{BaseURL: app.BaseURL}
	if cfg.Host == "" {
		slog.Warn("SMTP_HOST is not set; verification and reset links are only logged")
		return mail.NewLogMailer(links)
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	}, links)
}

// NewBulletGenerator returns the Gemini generator, or nil when no API key is set.
func NewBulletGenerator(ctx context.Context, cfg config.Gemini) (resumeusecase.BulletGenerator, error) {
	if cfg.APIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set; bullet generation is disabled")
		return nil, nil
	}
	g, err := gemini.NewGeminiGenerator(ctx, gemini.Config{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		BaseURL:    cfg.BaseURL,
		HTTPClient: infrahttp.NewHTTPClient(cfg.Timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("init bullet generator: %w", err)
	}
	return gemini.NewRateLimitedGenerator(g, ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)), nil
}

// App holds the collaborators that main needs beyond the router.
type App struct {
	Engine *gin.Engine
	Issuer *jwtmw.Issuer
}

// Components are the externally created resources the application is built from.
// Redis, Mailer and Generator may be nil.
type Components struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Mailer    authusecase.Mailer
	Generator resumeusecase.BulletGenerator
	Logger    *slog.Logger
}

// NewApp wires repositories, usecases, handlers and the router.
func NewApp(cfg *config.Config, c Components) *App {
	issuer := jwtmw.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL)

	// Repository
	userRepo := authadapters.NewUserGorm(c.DB)
	resumeRepo := cache.NewCachingResumeRepository(c.Redis, cfg.Redis.CacheTTL, resumeadapters.NewResumeGorm(c.DB), "resumes")

	// Usecase
	policy := authusecase.DefaultPolicy()
	policy.MaxLoginAttempts = cfg.Auth.MaxLoginAttempts
	policy.LockDuration = cfg.Auth.LockDuration
	policy.VerificationTTL = cfg.Auth.VerificationTTL
	policy.ResetTTL = cfg.Auth.ResetTTL
	mailer := c.Mailer
	if mailer == nil {
		mailer = NewMailer(cfg.SMTP, cfg.App)
	}
	authUC := authusecase.NewAuthUsecase(userRepo, issuer, mailer, policy)
	resumeUC := resumeusecase.NewResumeUsecase(resumeRepo, c.Generator, pdfstream.NewRenderer())

	ready := map[string]platformhandler.Check{
		"db": func(ctx context.Context) error {
			sqlDB, err := c.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.Redis != nil {
		ready["redis"] = func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() }
	}

	engine := router.NewRouter(router.Deps{
		Auth:   authhandler.NewAuthHandler(authUC),
		Resume: resumehandler.NewResumeHandler(resumeUC),
		Tokens: issuer,
		Logger: c.Logger,
		Ready:  ready,
	})
	return &App{Engine: engine, Issuer: issuer}
}
