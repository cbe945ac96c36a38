package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume_backend/internal/app/di"
	"resume_backend/internal/client"
	"resume_backend/internal/config"
	"resume_backend/internal/platform/db"
	infrahttp "resume_backend/internal/platform/http"
)

type nopMailer struct{}

func (nopMailer) SendVerification(context.Context, string, string) error  { return nil }
func (nopMailer) SendPasswordReset(context.Context, string, string) error { return nil }

type fakeRasterizer struct{ html string }

func (f *fakeRasterizer) Rasterize(_ context.Context, html string) ([]byte, error) {
	f.html = html
	return []byte("%PDF-client"), nil
}

type harness struct {
	app     *app
	out     *bytes.Buffer
	raster  *fakeRasterizer
	session string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb, err := di.OpenDatabase(config.DB{Driver: db.DriverSQLite, Path: ":memory:", RunMigrations: true})
	require.NoError(t, err)
	cfg := &config.Config{
		JWT:  config.JWT{Secret: "test-secret", TTL: time.Hour},
		Auth: config.Auth{MaxLoginAttempts: 5, LockDuration: time.Hour, VerificationTTL: time.Hour, ResetTTL: time.Hour},
	}
	srv := httptest.NewServer(di.NewApp(cfg, di.Components{DB: gdb, Mailer: nopMailer{}}).Engine)
	t.Cleanup(srv.Close)

	sessionPath := filepath.Join(t.TempDir(), "session.json")
	c := client.New(srv.URL, infrahttp.NewHTTPClient(5*time.Second), client.NewSession(&client.FileStore{Path: sessionPath}))
	h := &harness{out: &bytes.Buffer{}, raster: &fakeRasterizer{}, session: sessionPath}
	h.app = &app{client: c, rasterizer: h.raster, out: h.out}
	return h
}

func (h *harness) run(t *testing.T, args ...string) string {
	t.Helper()
	h.out.Reset()
	require.NoError(t, h.app.run(context.Background(), args), h.out.String())
	return h.out.String()
}

func writeResume(t *testing.T, title string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.json")
	body := `{"title":"` + title + `","personalInfo":{"fullName":"Alice","email":"alice@x.com"},` +
		`"workExperience":[{"company":"Acme","position":"Engineer","startDate":"2020-01-01","current":true}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCLI_Workflow(t *testing.T) {
	h := newHarness(t)

	assert.Contains(t, h.run(t, "register", "-email", "alice@x.com", "-password", "pw123456", "-name", "Alice"), "registered alice@x.com")
	_, err := os.Stat(h.session)
	require.NoError(t, err, "session persisted")

	id := strings.TrimSpace(h.run(t, "create", "-file", writeResume(t, "CV")))
	assert.Contains(t, h.run(t, "list"), id+"\tCV")
	assert.Contains(t, h.run(t, "show", "-id", id), `"title": "CV"`)

	dir := t.TempDir()
	out := h.run(t, "export", "-id", id, "-mode", "server", "-dir", dir)
	assert.Equal(t, filepath.Join(dir, "CV.pdf"), strings.TrimSpace(out))
	data, err := os.ReadFile(filepath.Join(dir, "CV.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	clientDir := t.TempDir()
	h.run(t, "export", "-id", id, "-mode", "client", "-dir", clientDir, "-template", "minimal")
	data, err = os.ReadFile(filepath.Join(clientDir, "CV.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-client", string(data))
	assert.Contains(t, h.raster.html, "Present")

	assert.Contains(t, h.run(t, "logout"), "logged out")
	_, err = os.Stat(h.session)
	assert.True(t, os.IsNotExist(err))

	h.out.Reset()
	err = h.app.run(context.Background(), []string{"list"})
	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestCLI_Usage(t *testing.T) {
	h := newHarness(t)

	tests := [][]string{
		{},
		{"nope"},
		{"login", "-email", "a@x.com"},
		{"export", "-id", "x", "-mode", "fax"},
	}
	for _, args := range tests {
		err := h.app.run(context.Background(), args)
		assert.ErrorIs(t, err, errUsage, "%v", args)
	}
}

func TestCLI_PromptsForMissingPassword(t *testing.T) {
	h := newHarness(t)
	prompts := 0
	h.app.password = func() (string, error) {
		prompts++
		return "pw123456", nil
	}

	h.run(t, "register", "-email", "alice@x.com", "-name", "Alice")
	h.run(t, "logout")
	assert.Contains(t, h.run(t, "login", "-email", "alice@x.com"), "logged in as alice@x.com")

	assert.Equal(t, 2, prompts)
	h.run(t, "login", "-email", "alice@x.com", "-password", "pw123456")
	assert.Equal(t, 2, prompts, "flag value wins over the prompt")
}
