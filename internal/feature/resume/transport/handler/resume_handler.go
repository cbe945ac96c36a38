// Package handler provides the HTTP handlers for the resume feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume_backend/internal/api"
	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/feature/resume/transport/dto"
	"resume_backend/internal/feature/resume/usecase"
	jwtmw "resume_backend/internal/platform/jwt"
)

// ResumeUsecase defines the resume operations used by the handler.
// Following Go convention, the interface is defined by the consumer (handler), not the provider (usecase).
type ResumeUsecase interface {
	Create(ctx context.Context, userID uint, r entity.Resume) (*entity.Resume, error)
	List(ctx context.Context, userID uint) ([]entity.Resume, error)
	Get(ctx context.Context, userID uint, id string) (*entity.Resume, error)
	Update(ctx context.Context, userID uint, id string, r entity.Resume) (*entity.Resume, error)
	Delete(ctx context.Context, userID uint, id string) error
	GenerateBullets(ctx context.Context, req usecase.BulletRequest) ([]string, error)
	RenderPDF(ctx context.Context, userID uint, id string) (*usecase.PDFFile, error)
}

// ResumeHandler handles the /resume endpoints. All routes sit behind AuthRequired.
type ResumeHandler struct {
	uc ResumeUsecase
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(uc ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, api.ErrorResponse{Message: msg})
}

// owner returns the authenticated user or writes 401.
func owner(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.UserID(c)
	if !ok {
		errorJSON(c, http.StatusUnauthorized, "Unauthorized")
	}
	return id, ok
}

// writeError maps usecase errors to statuses. fallback is the 500 message.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		errorJSON(c, http.StatusNotFound, "Resume not found")
	case errors.Is(err, usecase.ErrValidation):
		slog.Warn("resume validation failed", "error", err, "remote_addr", c.ClientIP())
		errorJSON(c, http.StatusBadRequest, err.Error())
	default:
		slog.Error(fallback, "error", err, "remote_addr", c.ClientIP())
		errorJSON(c, http.StatusInternalServerError, fallback)
	}
}

// List handles GET /resume.
func (h *ResumeHandler) List(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}
	list, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err, "Error fetching resumes")
		return
	}
	out := make([]api.ResumeResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.ToResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /resume/:id.
func (h *ResumeHandler) Get(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}
	r, err := h.uc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err, "Error fetching resume")
		return
	}
	c.JSON(http.StatusOK, dto.ToResponse(r))
}

// Create handles POST /resume. Any owner in the body is ignored.
func (h *ResumeHandler) Create(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}
	var req api.ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("resume validation failed", "error", err, "remote_addr", c.ClientIP())
		errorJSON(c, http.StatusBadRequest, "Invalid resume: "+err.Error())
		return
	}
	r, err := h.uc.Create(c.Request.Context(), userID, dto.ToEntity(req))
	if err != nil {
		writeError(c, err, "Error creating resume")
		return
	}
	slog.Info("resume created", "resume_id", r.ID, "user_id", userID)
	c.JSON(http.StatusCreated, dto.ToResponse(r))
}

// Update handles PUT /resume/:id.
func (h *ResumeHandler) Update(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}
	var req api.ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("resume validation failed", "error", err, "remote_addr", c.ClientIP())
		errorJSON(c, http.StatusBadRequest, "Invalid resume: "+err.Error())
		return
	}
	r, err := h.uc.Update(c.Request.Context(), userID, c.Param("id"), dto.ToEntity(req))
	if err != nil {
		writeError(c, err, "Error updating resume")
		return
	}
	c.JSON(http.StatusOK, dto.ToResponse(r))
}

// Delete handles DELETE /resume/:id.
func (h *ResumeHandler) Delete(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeError(c, err, "Error deleting resume")
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Resume deleted successfully"})
}

// GenerateBullets handles POST /resume/generate-bullets.
//   - 400 when the experience text is missing
//   - 502 when the model fails or returns nothing usable
func (h *ResumeHandler) GenerateBullets(c *gin.Context) {
	if _, ok := owner(c); !ok {
		return
	}
	var req api.GenerateBulletsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request")
		return
	}

	bullets, err := h.uc.GenerateBullets(c.Request.Context(), usecase.BulletRequest{
		Experience: req.Experience,
		Position:   req.Position,
		Company:    req.Company,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.GenerateBulletsResponse{BulletPoints: bullets})
	case errors.Is(err, usecase.ErrValidation):
		errorJSON(c, http.StatusBadRequest, "Experience description is required")
	case errors.Is(err, usecase.ErrGenerationFailed):
		slog.Error("bullet generation failed", "error", err, "remote_addr", c.ClientIP())
		errorJSON(c, http.StatusBadGateway, "Error generating bullet points")
	default:
		slog.Error("bullet generation error", "error", err, "remote_addr", c.ClientIP())
		errorJSON(c, http.StatusInternalServerError, "Error generating bullet points")
	}
}

// PDF handles GET /resume/:id/pdf. The document is fully rendered before the
// first header is written, so a failure is still a clean JSON error.
func (h *ResumeHandler) PDF(c *gin.Context) {
	userID, ok := owner(c)
	if !ok {
		return
	}
	file, err := h.uc.RenderPDF(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err, "Error generating PDF")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Header("Content-Length", strconv.Itoa(len(file.Data)))
	c.Data(http.StatusOK, "application/pdf", file.Data)
}
