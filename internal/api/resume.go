package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// PersonalInfo is the contact block of a resume.
type PersonalInfo struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

// WorkExperience is one entry of the work history. Dates use YYYY-MM-DD.
type WorkExperience struct {
	Company      string              `json:"company" binding:"required"`
	Position     string              `json:"position" binding:"required"`
	StartDate    *openapi_types.Date `json:"startDate"`
	EndDate      *openapi_types.Date `json:"endDate"`
	Current      bool                `json:"current"`
	Description  string              `json:"description"`
	BulletPoints []string            `json:"bulletPoints"`
}

// Education is one entry of the education history.
type Education struct {
	Institution string              `json:"institution" binding:"required"`
	Degree      string              `json:"degree" binding:"required"`
	Field       string              `json:"field,omitempty"`
	StartDate   *openapi_types.Date `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate"`
	Current     bool                `json:"current"`
	GPA         string              `json:"gpa,omitempty"`
}

// ResumeRequest is the body of POST /resume and PUT /resume/:id.
// Any owner supplied by the caller is not part of the shape and is dropped.
type ResumeRequest struct {
	Title          string           `json:"title" binding:"required"`
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"workExperience" binding:"dive"`
	Education      []Education      `json:"education" binding:"dive"`
	Skills         []string         `json:"skills"`
}

// ResumeResponse is a stored resume as returned by the API.
type ResumeResponse struct {
	ID             string           `json:"id"`
	User           uint             `json:"user"`
	Title          string           `json:"title"`
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []string         `json:"skills"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// GenerateBulletsRequest is the body of POST /resume/generate-bullets.
type GenerateBulletsRequest struct {
	Experience string `json:"experience"`
	Position   string `json:"position"`
	Company    string `json:"company"`
}

// GenerateBulletsResponse carries the generated bullet points in order.
type GenerateBulletsResponse struct {
	BulletPoints []string `json:"bulletPoints"`
}
