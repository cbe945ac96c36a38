package render_test

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/render"
	"resume_backend/internal/render/htmlview"
	"resume_backend/internal/render/pdfstream"
)

var (
	htmlSection = regexp.MustCompile(`data-section="(\w+)"`)
	htmlPeriod  = regexp.MustCompile(`<span class="period">([^<]*)</span>`)
	pdfShowText = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\) ?Tj`)
	periodLine  = regexp.MustCompile(`^([A-Z][a-z]{2} \d{4}|Present)( - ([A-Z][a-z]{2} \d{4}|Present))?$`)
)

var headingKinds = map[string]render.Kind{
	"Professional Summary": render.KindSummary,
	"Work Experience":      render.KindExperience,
	"Education":            render.KindEducation,
	"Skills":               render.KindSkills,
}

func month(y int, m time.Month) *time.Time {
	t := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

// fixtures cover a full document and one with every optional section empty.
func fixtures() map[string]entity.Resume {
	return map[string]entity.Resume{
		"full": {
			Title:        "CV",
			PersonalInfo: entity.PersonalInfo{FullName: "Alice Doe", Email: "alice@x.com", Phone: "+49 1", Location: "Berlin"},
			Summary:      "Backend engineer.",
			WorkExperience: []entity.WorkExperience{
				{Company: "Acme", Position: "Lead", StartDate: month(2022, 2), EndDate: month(2023, 1), Current: true, BulletPoints: []string{"Led team"}},
				{Company: "Initech", Position: "Dev", StartDate: month(2018, 5), EndDate: month(2022, 1)},
			},
			Education: []entity.Education{
				{Institution: "TU Berlin", Degree: "MSc", Field: "CS", StartDate: month(2016, 10), EndDate: month(2018, 4)},
			},
			Skills: []string{"Go", "PostgreSQL"},
		},
		"sparse": {
			Title:        "Short",
			PersonalInfo: entity.PersonalInfo{FullName: "Bob", Email: "bob@x.com"},
			Skills:       []string{"  "},
			Education: []entity.Education{
				{Institution: "MIT", Degree: "BSc", StartDate: month(2010, 9), Current: true},
			},
		},
	}
}

func htmlStructure(t *testing.T, doc render.Document) ([]render.Kind, []string) {
	t.Helper()
	out, err := htmlview.RenderString(doc, htmlview.DefaultTemplate)
	require.NoError(t, err)

	var kinds []render.Kind
	for _, m := range htmlSection.FindAllStringSubmatch(out, -1) {
		if m[1] != "header" {
			kinds = append(kinds, render.Kind(m[1]))
		}
	}
	var periods []string
	for _, m := range htmlPeriod.FindAllStringSubmatch(out, -1) {
		periods = append(periods, m[1])
	}
	return kinds, periods
}

func pdfStructure(t *testing.T, doc render.Document) ([]render.Kind, []string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, (&pdfstream.Renderer{Compress: false}).Render(&buf, doc))

	matches := pdfShowText.FindAllSubmatch(buf.Bytes(), -1)
	require.NotEmpty(t, matches, "no text drawn in PDF")

	var kinds []render.Kind
	var periods []string
	for _, m := range matches {
		line := strings.NewReplacer(`\(`, "(", `\)`, ")", `\\`, `\`).Replace(string(m[1]))
		if k, ok := headingKinds[line]; ok {
			kinds = append(kinds, k)
		}
		if periodLine.MatchString(line) {
			periods = append(periods, line)
		}
	}
	return kinds, periods
}

func TestRenderPaths_AgreeOnStructure(t *testing.T) {
	for name, r := range fixtures() {
		t.Run(name, func(t *testing.T) {
			doc := render.FromResume(r)

			htmlKinds, htmlPeriods := htmlStructure(t, doc)
			pdfKinds, pdfPeriods := pdfStructure(t, doc)

			assert.Equal(t, doc.Order(), htmlKinds)
			assert.Equal(t, htmlKinds, pdfKinds, "section order differs between paths")
			assert.Equal(t, htmlPeriods, pdfPeriods, "date lines differ between paths")
		})
	}
}

func TestRenderPaths_CurrentEntryShowsPresent(t *testing.T) {
	doc := render.FromResume(fixtures()["full"])

	_, htmlPeriods := htmlStructure(t, doc)
	_, pdfPeriods := pdfStructure(t, doc)

	want := []string{"Feb 2022 - Present", "May 2018 - Jan 2022", "Oct 2016 - Apr 2018"}
	assert.Equal(t, want, htmlPeriods)
	assert.Equal(t, want, pdfPeriods)
}

func TestRenderPaths_OmitEmptySections(t *testing.T) {
	doc := render.FromResume(fixtures()["sparse"])

	htmlKinds, _ := htmlStructure(t, doc)
	pdfKinds, _ := pdfStructure(t, doc)

	assert.Equal(t, []render.Kind{render.KindEducation}, htmlKinds)
	assert.Equal(t, []render.Kind{render.KindEducation}, pdfKinds)
}
