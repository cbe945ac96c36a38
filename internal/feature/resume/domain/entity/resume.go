// Package entity defines the domain models for the resume feature.
package entity

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	linkedInPattern = regexp.MustCompile(`^https?://([a-z0-9-]+\.)*linkedin\.com(/.*)?$`)
	websitePattern  = regexp.MustCompile(`^https?://\S+$`)
)

// Resume is a user-owned resume document. UserID never changes after creation.
type Resume struct {
	ID             string
	UserID         uint
	Title          string
	PersonalInfo   PersonalInfo
	Summary        string
	WorkExperience []WorkExperience
	Education      []Education
	Skills         []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PersonalInfo is the contact header of a resume.
type PersonalInfo struct {
	FullName string
	Email    string
	Phone    string
	Location string
	LinkedIn string
	Website  string
}

// WorkExperience is one position held. EndDate is ignored while Current is set.
type WorkExperience struct {
	Company      string
	Position     string
	StartDate    *time.Time
	EndDate      *time.Time
	Current      bool
	Description  string
	BulletPoints []string
}

// Education is one degree or course of study.
type Education struct {
	Institution string
	Degree      string
	Field       string
	StartDate   *time.Time
	EndDate     *time.Time
	Current     bool
	GPA         string
}

// Normalize trims free-text fields and drops blank skills and bullet points,
// keeping entry order.
func (r *Resume) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.PersonalInfo.FullName = strings.TrimSpace(r.PersonalInfo.FullName)
	r.PersonalInfo.Email = strings.TrimSpace(r.PersonalInfo.Email)
	r.PersonalInfo.LinkedIn = strings.TrimSpace(r.PersonalInfo.LinkedIn)
	r.PersonalInfo.Website = strings.TrimSpace(r.PersonalInfo.Website)
	r.Skills = compact(r.Skills)
	for i := range r.WorkExperience {
		r.WorkExperience[i].BulletPoints = compact(r.WorkExperience[i].BulletPoints)
	}
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the document invariants. All violations are joined.
func (r *Resume) Validate() error {
	var errs []error
	if r.Title == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if r.PersonalInfo.FullName == "" {
		errs = append(errs, errors.New("personalInfo.fullName is required"))
	}
	if r.PersonalInfo.Email == "" {
		errs = append(errs, errors.New("personalInfo.email is required"))
	}
	if l := r.PersonalInfo.LinkedIn; l != "" && !linkedInPattern.MatchString(l) {
		errs = append(errs, errors.New("personalInfo.linkedin must be a linkedin.com URL"))
	}
	if w := r.PersonalInfo.Website; w != "" && !websitePattern.MatchString(w) {
		errs = append(errs, errors.New("personalInfo.website must be an http(s) URL"))
	}
	for i, w := range r.WorkExperience {
		if w.Company == "" || w.Position == "" {
			errs = append(errs, fmt.Errorf("workExperience[%d]: company and position are required", i))
		}
		errs = append(errs, checkPeriod(fmt.Sprintf("workExperience[%d]", i), w.StartDate, w.EndDate, w.Current)...)
	}
	for i, e := range r.Education {
		if e.Institution == "" || e.Degree == "" {
			errs = append(errs, fmt.Errorf("education[%d]: institution and degree are required", i))
		}
		errs = append(errs, checkPeriod(fmt.Sprintf("education[%d]", i), e.StartDate, e.EndDate, e.Current)...)
	}
	return errors.Join(errs...)
}

func checkPeriod(field string, start, end *time.Time, current bool) []error {
	var errs []error
	if start == nil {
		errs = append(errs, fmt.Errorf("%s: startDate is required", field))
	}
	if !current && end == nil {
		errs = append(errs, fmt.Errorf("%s: endDate is required unless current", field))
	}
	if !current && start != nil && end != nil && end.Before(*start) {
		errs = append(errs, fmt.Errorf("%s: endDate is before startDate", field))
	}
	return errs
}
