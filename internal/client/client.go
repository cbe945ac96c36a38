package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"resume_backend/internal/api"
)

// ErrUnauthorized is returned for any 401. The session has already been cleared.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client calls the resume API on behalf of the session.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New creates a Client. httpClient must not be nil.
func New(baseURL string, httpClient *http.Client, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		session: session,
	}
}

// Session returns the session the client authenticates with.
func (c *Client) Session() *Session { return c.session }

// Register creates an account and signs in.
func (c *Client) Register(ctx context.Context, email, password, name string) (*api.AuthResponse, error) {
	var out api.AuthResponse
	body := api.RegisterRequest{Email: openapi_types.Email(email), Password: password, Name: name}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, c.session.Set(out.Token, out.User)
}

// Login signs in and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) (*api.AuthResponse, error) {
	var out api.AuthResponse
	body := api.LoginRequest{Email: openapi_types.Email(email), Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, c.session.Set(out.Token, out.User)
}

// Logout drops the local session. Tokens are stateless, so the server is not contacted.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// VerifyEmail confirms an email address.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/auth/verify-email/"+url.PathEscape(token), nil, nil)
}

// ForgotPassword requests a reset mail.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", api.ForgotPasswordRequest{Email: openapi_types.Email(email)}, nil)
}

// ResetPassword sets a new password with a mailed token.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	return c.do(ctx, http.MethodPost, "/auth/reset-password/"+url.PathEscape(token), api.ResetPasswordRequest{Password: password}, nil)
}

// ListResumes returns the caller's resumes.
func (c *Client) ListResumes(ctx context.Context) ([]api.ResumeResponse, error) {
	var out []api.ResumeResponse
	if err := c.do(ctx, http.MethodGet, "/resume", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetResume returns one resume.
func (c *Client) GetResume(ctx context.Context, id string) (*api.ResumeResponse, error) {
	var out api.ResumeResponse
	if err := c.do(ctx, http.MethodGet, "/resume/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateResume stores a new resume.
func (c *Client) CreateResume(ctx context.Context, req api.ResumeRequest) (*api.ResumeResponse, error) {
	var out api.ResumeResponse
	if err := c.do(ctx, http.MethodPost, "/resume", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateResume replaces a resume.
func (c *Client) UpdateResume(ctx context.Context, id string, req api.ResumeRequest) (*api.ResumeResponse, error) {
	var out api.ResumeResponse
	if err := c.do(ctx, http.MethodPut, "/resume/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteResume removes a resume.
func (c *Client) DeleteResume(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/resume/"+url.PathEscape(id), nil, nil)
}

// GenerateBullets asks the server for bullet point suggestions.
func (c *Client) GenerateBullets(ctx context.Context, req api.GenerateBulletsRequest) ([]string, error) {
	var out api.GenerateBulletsResponse
	if err := c.do(ctx, http.MethodPost, "/resume/generate-bullets", req, &out); err != nil {
		return nil, err
	}
	return out.BulletPoints, nil
}

// DownloadPDF fetches the server-rendered PDF and its suggested filename.
func (c *Client) DownloadPDF(ctx context.Context, id string) ([]byte, string, error) {
	resp, err := c.send(ctx, http.MethodGet, "/resume/"+url.PathEscape(id)+"/pdf", nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if err := c.check(resp); err != nil {
		return nil, "", err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read pdf: %w", err)
	}
	name := "resume.pdf"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return data, name, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := c.check(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// check turns non-2xx responses into errors and drops the session on 401.
func (c *Client) check(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	var e api.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&e)
	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.session.Clear(); err != nil {
			slog.Warn("failed to clear session", "error", err)
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, e.Message)
	}
	return &APIError{Status: resp.StatusCode, Message: e.Message}
}
