// Package router mounts every HTTP route of the service.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authhandler "resume_backend/internal/feature/auth/transport/handler"
	resumehandler "resume_backend/internal/feature/resume/transport/handler"
	platformhandler "resume_backend/internal/platform/http/handler"
	jwtmw "resume_backend/internal/platform/jwt"
	"resume_backend/internal/platform/logger"
)

// Deps carries the handlers and middleware dependencies.
type Deps struct {
	Auth   *authhandler.AuthHandler
	Resume *resumehandler.ResumeHandler
	Tokens jwtmw.TokenParser
	Logger *slog.Logger
	// Ready is served on /readyz. Nil omits the route.
	Ready map[string]platformhandler.Check
}

// NewRouter builds the gin engine.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if d.Logger != nil {
		r.Use(logger.RequestLogger(d.Logger))
	}

	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	if d.Ready != nil {
		r.GET("/readyz", platformhandler.Ready(d.Ready))
	}

	// Public
	auth := r.Group("/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.GET("/verify-email/:token", d.Auth.VerifyEmail)
		auth.POST("/forgot-password", d.Auth.ForgotPassword)
		auth.POST("/reset-password/:token", d.Auth.ResetPassword)
	}

	// Bearer token required
	resume := r.Group("/resume")
	resume.Use(jwtmw.AuthRequired(d.Tokens))
	{
		resume.GET("", d.Resume.List)
		resume.POST("", d.Resume.Create)
		resume.POST("/generate-bullets", d.Resume.GenerateBullets)
		resume.GET("/:id", d.Resume.Get)
		resume.PUT("/:id", d.Resume.Update)
		resume.DELETE("/:id", d.Resume.Delete)
		resume.GET("/:id/pdf", d.Resume.PDF)
	}

	return r
}
