// Package render builds the presentation model shared by the HTML preview and
// the server-side PDF writer. Both backends draw a Document in order and never
// look at the resume entity themselves, so section order, date wording and the
// omission of empty sections cannot drift between them.
package render

import (
	"regexp"
	"strings"
	"time"

	"resume_backend/internal/feature/resume/domain/entity"
)

// Kind identifies a body section.
type Kind string

const (
	KindSummary    Kind = "summary"
	KindExperience Kind = "experience"
	KindEducation  Kind = "education"
	KindSkills     Kind = "skills"
)

// DateLayout is the display format of entry dates.
const DateLayout = "Jan 2006"

// Present replaces the end date of an ongoing entry.
const Present = "Present"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Document is a resume laid out as header plus ordered sections.
type Document struct {
	Title    string
	Header   Header
	Sections []Section
}

// Header is the name block at the top of the page.
type Header struct {
	Name string
	// Contact is email, phone and location joined by " | ", blanks skipped.
	Contact string
	// Links holds "LinkedIn: ..." and "Website: ..." lines when set.
	Links []string
}

// Section is one titled block. Text sections use Body, list sections use Entries.
type Section struct {
	Kind    Kind
	Heading string
	Body    string
	Entries []Entry
}

// Entry is one job or degree.
type Entry struct {
	Title    string
	Subtitle string
	Period   string
	Bullets  []string
}

// FromResume lays out r. Sections with no content are left out.
func FromResume(r entity.Resume) Document {
	doc := Document{
		Title:  r.Title,
		Header: header(r.PersonalInfo),
	}

	if s := strings.TrimSpace(r.Summary); s != "" {
		doc.Sections = append(doc.Sections, Section{Kind: KindSummary, Heading: "Professional Summary", Body: s})
	}

	if len(r.WorkExperience) > 0 {
		sec := Section{Kind: KindExperience, Heading: "Work Experience"}
		for _, w := range r.WorkExperience {
			sec.Entries = append(sec.Entries, Entry{
				Title:   joinNonEmpty(" at ", w.Position, w.Company),
				Period:  Period(w.StartDate, w.EndDate, w.Current),
				Bullets: nonBlank(w.BulletPoints),
			})
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if len(r.Education) > 0 {
		sec := Section{Kind: KindEducation, Heading: "Education"}
		for _, e := range r.Education {
			gpa := ""
			if e.GPA != "" {
				gpa = "GPA: " + e.GPA
			}
			sec.Entries = append(sec.Entries, Entry{
				Title:    joinNonEmpty(" in ", e.Degree, e.Field),
				Subtitle: joinNonEmpty(" | ", e.Institution, gpa),
				Period:   Period(e.StartDate, e.EndDate, e.Current),
			})
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if skills := nonBlank(r.Skills); len(skills) > 0 {
		doc.Sections = append(doc.Sections, Section{Kind: KindSkills, Heading: "Skills", Body: strings.Join(skills, ", ")})
	}

	return doc
}

// Order returns the section kinds in drawing order.
func (d Document) Order() []Kind {
	out := make([]Kind, 0, len(d.Sections))
	for _, s := range d.Sections {
		out = append(out, s.Kind)
	}
	return out
}

func header(p entity.PersonalInfo) Header {
	h := Header{
		Name:    p.FullName,
		Contact: joinNonEmpty(" | ", p.Email, p.Phone, p.Location),
	}
	if p.LinkedIn != "" {
		h.Links = append(h.Links, "LinkedIn: "+p.LinkedIn)
	}
	if p.Website != "" {
		h.Links = append(h.Links, "Website: "+p.Website)
	}
	return h
}

// FormatDate renders t as "Jan 2006", or "" for nil.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// Period renders a date range. An ongoing entry ends in "Present" whatever its
// stored end date; missing ends are dropped along with the separator.
func Period(start, end *time.Time, current bool) string {
	to := FormatDate(end)
	if current {
		to = Present
	}
	return joinNonEmpty(" - ", FormatDate(start), to)
}

// Filename returns the title with every non-alphanumeric character replaced
// by "_", or "resume" for an empty title.
func Filename(title string) string {
	if title == "" {
		return "resume"
	}
	return unsafeFilenameChars.ReplaceAllString(title, "_")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func nonBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
