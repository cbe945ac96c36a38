package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/feature/resume/usecase"
)

// resumeGorm is the gorm implementation of usecase.ResumeRepository.
// Every statement filters on both id and user_id.
type resumeGorm struct {
	db *gorm.DB
}

// Compile-time check that resumeGorm implements ResumeRepository.
var _ usecase.ResumeRepository = (*resumeGorm)(nil)

// NewResumeGorm creates a resumeGorm on the given connection.
func NewResumeGorm(db *gorm.DB) *resumeGorm {
	return &resumeGorm{db: db}
}

// Create inserts r and copies the generated timestamps back.
func (g *resumeGorm) Create(ctx context.Context, r *entity.Resume) error {
	m := fromEntity(r)
	if err := g.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	r.CreatedAt = m.CreatedAt
	r.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByID returns usecase.ErrNotFound unless userID owns the resume.
func (g *resumeGorm) FindByID(ctx context.Context, userID uint, id string) (*entity.Resume, error) {
	var m ResumeModel
	err := g.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return m.toEntity(), nil
}

// ListByUser returns the owner's resumes oldest first.
func (g *resumeGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Resume, error) {
	var rows []ResumeModel
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.Resume, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].toEntity())
	}
	return out, nil
}

// Update overwrites every column but id, user_id and created_at in a single
// statement, then reads the row back.
func (g *resumeGorm) Update(ctx context.Context, r *entity.Resume) (*entity.Resume, error) {
	m := fromEntity(r)
	m.UpdatedAt = time.Now().UTC()

	res := g.db.WithContext(ctx).Model(&ResumeModel{}).
		Where("id = ? AND user_id = ?", r.ID, r.UserID).
		Select("*").Omit("id", "user_id", "created_at").
		Updates(&m)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, usecase.ErrNotFound
	}
	return g.FindByID(ctx, r.UserID, r.ID)
}

// Delete removes the row permanently.
func (g *resumeGorm) Delete(ctx context.Context, userID uint, id string) error {
	res := g.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&ResumeModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
