// Command resumectl is a command-line client for the resume API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/term"

	"resume_backend/internal/client"
	"resume_backend/internal/client/export"
	infrahttp "resume_backend/internal/platform/http"
	"resume_backend/internal/platform/logger"
)

type cliConfig struct {
	Server      string        `env:"SERVER" envDefault:"http://localhost:8080"`
	SessionFile string        `env:"SESSION_FILE"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"60s"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"warn"`
}

func main() {
	var cfg cliConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "RESUMECTL_"}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(logger.New(cfg.LogLevel, os.Stderr))

	if cfg.SessionFile == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		cfg.SessionFile = filepath.Join(dir, "resumectl", "session.json")
	}

	session := client.NewSession(&client.FileStore{Path: cfg.SessionFile})
	if err := session.Load(); err != nil {
		slog.Warn("ignoring unreadable session", "error", err)
	}
	c := client.New(cfg.Server, infrahttp.NewHTTPClient(cfg.Timeout), session)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		client:     c,
		rasterizer: export.NewChromeRasterizer(),
		out:        os.Stdout,
		password:   func() (string, error) { return promptPassword(os.Stderr) },
	}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// promptPassword reads a password from the terminal without echo.
func promptPassword(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; pass -password")
	}
	fmt.Fprint(w, "Password: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}
