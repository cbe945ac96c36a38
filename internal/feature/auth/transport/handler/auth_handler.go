// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume_backend/internal/api"
	"resume_backend/internal/feature/auth/domain/entity"
	"resume_backend/internal/feature/auth/usecase"
)

// AuthUsecase defines the credential operations used by the handler.
// Following Go convention, the interface is defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	VerifyEmail(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// AuthHandler handles the /auth endpoints.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func toUserResponse(u *entity.User) api.UserResponse {
	return api.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		IsVerified: u.IsVerified,
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: msg})
}

// Register handles POST /auth/register.
//   - 201 with token and user on success
//   - 400 on invalid body or an existing email
func (h *AuthHandler) Register(c *gin.Context) {
	var req api.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		badRequest(c, "Invalid request")
		return
	}

	res, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:    string(req.Email),
		Password: req.Password,
		Name:     req.Name,
	})
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		slog.Warn("register rejected", "error", err, "remote_addr", c.ClientIP())
		badRequest(c, "User already exists")
		return
	case errors.Is(err, usecase.ErrValidation):
		badRequest(c, err.Error())
		return
	default:
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error creating user"})
		return
	}

	slog.Info("user registered", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.AuthResponse{Token: res.Token, User: toUserResponse(res.User)})
}

// Login handles POST /auth/login.
//   - 400 for an unknown email or a wrong password
//   - 401 while the account is locked
func (h *AuthHandler) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		badRequest(c, "Invalid request")
		return
	}

	res, err := h.auth.Login(c.Request.Context(), string(req.Email), req.Password)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrUserNotFound):
		badRequest(c, "User not found")
		return
	case errors.Is(err, usecase.ErrInvalidCredentials):
		slog.Warn("login failed", "remote_addr", c.ClientIP())
		badRequest(c, "Invalid credentials")
		return
	case errors.Is(err, usecase.ErrAccountLocked):
		slog.Warn("login on locked account", "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{
			Message: "Account is locked. Please try again later or reset your password.",
		})
		return
	default:
		slog.Error("login error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error logging in"})
		return
	}

	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.AuthResponse{Token: res.Token, User: toUserResponse(res.User)})
}

// VerifyEmail handles GET /auth/verify-email/:token.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	err := h.auth.VerifyEmail(c.Request.Context(), c.Param("token"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Email verified successfully"})
	case errors.Is(err, usecase.ErrInvalidOrExpiredToken):
		badRequest(c, "Invalid or expired verification token")
	default:
		slog.Error("verify email error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error verifying email"})
	}
}

// ForgotPassword handles POST /auth/forgot-password.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req api.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	err := h.auth.RequestPasswordReset(c.Request.Context(), string(req.Email))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Password reset email sent"})
	case errors.Is(err, usecase.ErrUserNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "User not found"})
	default:
		slog.Error("forgot password error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error sending reset email"})
	}
}

// ResetPassword handles POST /auth/reset-password/:token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req api.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Password reset successful"})
	case errors.Is(err, usecase.ErrInvalidOrExpiredToken):
		badRequest(c, "Invalid or expired reset token")
	case errors.Is(err, usecase.ErrValidation):
		badRequest(c, err.Error())
	default:
		slog.Error("reset password error", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Error resetting password"})
	}
}
