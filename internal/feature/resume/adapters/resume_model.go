// Package adapters provides the repository implementations for the resume feature.
package adapters

import (
	"time"

	"resume_backend/internal/feature/resume/domain/entity"
)

// ResumeModel is the gorm row for a resume. Nested lists are stored as JSON
// columns so a document is always read and written as one row.
type ResumeModel struct {
	ID             string                `gorm:"primaryKey;size:36"`
	UserID         uint                  `gorm:"index;not null"`
	Title          string                `gorm:"size:255;not null"`
	Personal       personalInfoModel     `gorm:"embedded;embeddedPrefix:personal_"`
	Summary        string                `gorm:"type:text"`
	WorkExperience []workExperienceModel `gorm:"type:text;serializer:json"`
	Education      []educationModel      `gorm:"type:text;serializer:json"`
	Skills         []string              `gorm:"type:text;serializer:json"`
	CreatedAt      time.Time             `gorm:"index"`
	UpdatedAt      time.Time
}

// TableName overrides the default table name.
func (ResumeModel) TableName() string { return "resumes" }

type personalInfoModel struct {
	FullName string `gorm:"size:255"`
	Email    string `gorm:"size:255"`
	Phone    string `gorm:"size:64"`
	Location string `gorm:"size:255"`
	LinkedIn string `gorm:"column:linkedin;size:512"`
	Website  string `gorm:"size:512"`
}

type workExperienceModel struct {
	Company      string     `json:"company"`
	Position     string     `json:"position"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
	BulletPoints []string   `json:"bulletPoints,omitempty"`
}

type educationModel struct {
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Current     bool       `json:"current"`
	GPA         string     `json:"gpa,omitempty"`
}

func fromEntity(r *entity.Resume) ResumeModel {
	m := ResumeModel{
		ID:     r.ID,
		UserID: r.UserID,
		Title:  r.Title,
		Personal: personalInfoModel{
			FullName: r.PersonalInfo.FullName,
			Email:    r.PersonalInfo.Email,
			Phone:    r.PersonalInfo.Phone,
			Location: r.PersonalInfo.Location,
			LinkedIn: r.PersonalInfo.LinkedIn,
			Website:  r.PersonalInfo.Website,
		},
		Summary:        r.Summary,
		WorkExperience: make([]workExperienceModel, 0, len(r.WorkExperience)),
		Education:      make([]educationModel, 0, len(r.Education)),
		Skills:         append([]string{}, r.Skills...),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	for _, w := range r.WorkExperience {
		m.WorkExperience = append(m.WorkExperience, workExperienceModel(w))
	}
	for _, e := range r.Education {
		m.Education = append(m.Education, educationModel(e))
	}
	return m
}

func (m *ResumeModel) toEntity() *entity.Resume {
	r := &entity.Resume{
		ID:     m.ID,
		UserID: m.UserID,
		Title:  m.Title,
		PersonalInfo: entity.PersonalInfo{
			FullName: m.Personal.FullName,
			Email:    m.Personal.Email,
			Phone:    m.Personal.Phone,
			Location: m.Personal.Location,
			LinkedIn: m.Personal.LinkedIn,
			Website:  m.Personal.Website,
		},
		Summary:        m.Summary,
		WorkExperience: make([]entity.WorkExperience, 0, len(m.WorkExperience)),
		Education:      make([]entity.Education, 0, len(m.Education)),
		Skills:         append([]string{}, m.Skills...),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	for _, w := range m.WorkExperience {
		r.WorkExperience = append(r.WorkExperience, entity.WorkExperience(w))
	}
	for _, e := range m.Education {
		r.Education = append(r.Education, entity.Education(e))
	}
	return r
}
