package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/render"
)

// ResumeRepository abstracts resume persistence. Every lookup is scoped to
// the owner; a resume owned by someone else is reported as ErrNotFound.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ResumeRepository interface {
	Create(ctx context.Context, r *entity.Resume) error
	FindByID(ctx context.Context, userID uint, id string) (*entity.Resume, error)
	ListByUser(ctx context.Context, userID uint) ([]entity.Resume, error)
	// Update replaces every field except ID, owner and CreatedAt.
	Update(ctx context.Context, r *entity.Resume) (*entity.Resume, error)
	Delete(ctx context.Context, userID uint, id string) error
}

// PDFRenderer draws a laid-out document as PDF.
type PDFRenderer interface {
	Render(w io.Writer, doc render.Document) error
}

// PDFFile is a fully rendered PDF ready to be sent.
type PDFFile struct {
	Filename string
	Data     []byte
}

// resumeUsecase implements the resume business logic.
type resumeUsecase struct {
	repo      ResumeRepository
	generator BulletGenerator
	pdf       PDFRenderer
	newID     func() string
}

// NewResumeUsecase creates a new resumeUsecase.
func NewResumeUsecase(repo ResumeRepository, generator BulletGenerator, pdf PDFRenderer) *resumeUsecase {
	return &resumeUsecase{
		repo:      repo,
		generator: generator,
		pdf:       pdf,
		newID:     uuid.NewString,
	}
}

func prepare(r *entity.Resume) error {
	r.Normalize()
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// validID rejects IDs that cannot exist so they never reach the database.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Create stores r as a new resume owned by userID. Any ID or owner set on r is replaced.
func (u *resumeUsecase) Create(ctx context.Context, userID uint, r entity.Resume) (*entity.Resume, error) {
	r.ID = u.newID()
	r.UserID = userID
	if err := prepare(&r); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, &r); err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return &r, nil
}

// List returns the caller's resumes in creation order.
func (u *resumeUsecase) List(ctx context.Context, userID uint) ([]entity.Resume, error) {
	list, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return list, nil
}

// Get returns the resume if userID owns it.
func (u *resumeUsecase) Get(ctx context.Context, userID uint, id string) (*entity.Resume, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	return u.repo.FindByID(ctx, userID, id)
}

// Update replaces the content of an owned resume. Last write wins.
func (u *resumeUsecase) Update(ctx context.Context, userID uint, id string, r entity.Resume) (*entity.Resume, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	r.ID = id
	r.UserID = userID
	if err := prepare(&r); err != nil {
		return nil, err
	}
	return u.repo.Update(ctx, &r)
}

// Delete removes an owned resume permanently.
func (u *resumeUsecase) Delete(ctx context.Context, userID uint, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return u.repo.Delete(ctx, userID, id)
}

// RenderPDF renders an owned resume to a complete in-memory PDF. The caller
// sends nothing until this returns without error.
func (u *resumeUsecase) RenderPDF(ctx context.Context, userID uint, id string) (*PDFFile, error) {
	r, err := u.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := u.pdf.Render(&buf, render.FromResume(*r)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return &PDFFile{
		Filename: render.Filename(r.Title) + ".pdf",
		Data:     buf.Bytes(),
	}, nil
}
