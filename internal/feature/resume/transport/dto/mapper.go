// Package dto maps resume wire types to and from the domain entity.
package dto

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"resume_backend/internal/api"
	"resume_backend/internal/feature/resume/domain/entity"
)

func fromDate(d *openapi_types.Date) *time.Time {
	if d == nil || d.Time.IsZero() {
		return nil
	}
	t := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}

func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: t.UTC()}
}

// ToEntity converts a create/update body. Ownership and timestamps are left unset.
func ToEntity(req api.ResumeRequest) entity.Resume {
	r := entity.Resume{
		Title: req.Title,
		PersonalInfo: entity.PersonalInfo{
			FullName: req.PersonalInfo.FullName,
			Email:    req.PersonalInfo.Email,
			Phone:    req.PersonalInfo.Phone,
			Location: req.PersonalInfo.Location,
			LinkedIn: req.PersonalInfo.LinkedIn,
			Website:  req.PersonalInfo.Website,
		},
		Summary: req.Summary,
		Skills:  req.Skills,
	}
	for _, w := range req.WorkExperience {
		r.WorkExperience = append(r.WorkExperience, entity.WorkExperience{
			Company:      w.Company,
			Position:     w.Position,
			StartDate:    fromDate(w.StartDate),
			EndDate:      fromDate(w.EndDate),
			Current:      w.Current,
			Description:  w.Description,
			BulletPoints: w.BulletPoints,
		})
	}
	for _, e := range req.Education {
		r.Education = append(r.Education, entity.Education{
			Institution: e.Institution,
			Degree:      e.Degree,
			Field:       e.Field,
			StartDate:   fromDate(e.StartDate),
			EndDate:     fromDate(e.EndDate),
			Current:     e.Current,
			GPA:         e.GPA,
		})
	}
	return r
}

// ToResponse converts a stored resume for the API.
func ToResponse(r *entity.Resume) api.ResumeResponse {
	out := api.ResumeResponse{
		ID:    r.ID,
		User:  r.UserID,
		Title: r.Title,
		PersonalInfo: api.PersonalInfo{
			FullName: r.PersonalInfo.FullName,
			Email:    r.PersonalInfo.Email,
			Phone:    r.PersonalInfo.Phone,
			Location: r.PersonalInfo.Location,
			LinkedIn: r.PersonalInfo.LinkedIn,
			Website:  r.PersonalInfo.Website,
		},
		Summary:        r.Summary,
		WorkExperience: make([]api.WorkExperience, 0, len(r.WorkExperience)),
		Education:      make([]api.Education, 0, len(r.Education)),
		Skills:         append([]string{}, r.Skills...),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	for _, w := range r.WorkExperience {
		out.WorkExperience = append(out.WorkExperience, api.WorkExperience{
			Company:      w.Company,
			Position:     w.Position,
			StartDate:    toDate(w.StartDate),
			EndDate:      toDate(w.EndDate),
			Current:      w.Current,
			Description:  w.Description,
			BulletPoints: append([]string{}, w.BulletPoints...),
		})
	}
	for _, e := range r.Education {
		out.Education = append(out.Education, api.Education{
			Institution: e.Institution,
			Degree:      e.Degree,
			Field:       e.Field,
			StartDate:   toDate(e.StartDate),
			EndDate:     toDate(e.EndDate),
			Current:     e.Current,
			GPA:         e.GPA,
		})
	}
	return out
}

// FromResponse rebuilds the entity from an API response, as the command-line
// client does before rendering locally.
func FromResponse(res api.ResumeResponse) entity.Resume {
	r := ToEntity(api.ResumeRequest{
		Title:          res.Title,
		PersonalInfo:   res.PersonalInfo,
		Summary:        res.Summary,
		WorkExperience: res.WorkExperience,
		Education:      res.Education,
		Skills:         res.Skills,
	})
	r.ID = res.ID
	r.UserID = res.User
	r.CreatedAt = res.CreatedAt
	r.UpdatedAt = res.UpdatedAt
	return r
}
