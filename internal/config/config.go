// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains server configuration parameters.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	HTTP     HTTP   `envPrefix:"HTTP_"`
	DB       DB     `envPrefix:"DB_"`
	Redis    Redis  `envPrefix:"REDIS_"`
	JWT      JWT    `envPrefix:"JWT_"`
	Auth     Auth   `envPrefix:"AUTH_"`
	Gemini   Gemini `envPrefix:"GEMINI_"`
	SMTP     SMTP   `envPrefix:"SMTP_"`
	App      App    `envPrefix:"APP_"`
}

// HTTP contains listener parameters.
type HTTP struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// DB contains database connection parameters. Path is used by the sqlite driver only.
type DB struct {
	Driver         string        `env:"DRIVER" envDefault:"postgres"`
	Host           string        `env:"HOST" envDefault:"localhost"`
	Port           string        `env:"PORT" envDefault:"5432"`
	User           string        `env:"USER" envDefault:"resume"`
	Password       string        `env:"PASSWORD"`
	Name           string        `env:"NAME" envDefault:"resume"`
	SSLMode        string        `env:"SSLMODE" envDefault:"disable"`
	Path           string        `env:"PATH" envDefault:"resume.db"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"30s"`
	RunMigrations  bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// Redis contains cache parameters. An empty host disables caching.
type Redis struct {
	Host     string        `env:"HOST"`
	Port     string        `env:"PORT" envDefault:"6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" envDefault:"0"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// JWT contains session token parameters.
type JWT struct {
	Secret string        `env:"SECRET,required,notEmpty"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// Auth contains credential policy parameters.
type Auth struct {
	MaxLoginAttempts int           `env:"MAX_LOGIN_ATTEMPTS" envDefault:"5"`
	LockDuration     time.Duration `env:"LOCK_DURATION" envDefault:"2h"`
	VerificationTTL  time.Duration `env:"VERIFICATION_TTL" envDefault:"24h"`
	ResetTTL         time.Duration `env:"RESET_TTL" envDefault:"1h"`
}

// Gemini contains bullet generation parameters. An empty key disables
// generation; RateLimit caps requests per minute and 0 disables the cap.
type Gemini struct {
	APIKey    string        `env:"API_KEY"`
	Model     string        `env:"MODEL" envDefault:"gemini-2.5-flash"`
	BaseURL   string        `env:"BASE_URL"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"30s"`
	RateLimit int           `env:"RATE_LIMIT" envDefault:"15"`
}

// SMTP contains outgoing mail parameters. An empty host logs mails instead of sending them.
type SMTP struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"no-reply@localhost"`
}

// App contains links embedded in outgoing mails.
type App struct {
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3000"`
}

// NewConfig loads an optional .env file, then parses the environment.
// Variables already set in the environment win over .env entries.
func NewConfig(dotenv ...string) (*Config, error) {
	if err := godotenv.Load(dotenv...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
		slog.Info(".env not found; using system environment variables")
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
