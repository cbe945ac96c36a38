package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume_backend/internal/feature/resume/domain/entity"
)

type fakeRasterizer struct {
	html string
	err  error
}

func (f *fakeRasterizer) Rasterize(_ context.Context, html string) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func resume(title string) entity.Resume {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	return entity.Resume{
		ID:           "r1",
		Title:        title,
		PersonalInfo: entity.PersonalInfo{FullName: "Alice", Email: "alice@x.com"},
		WorkExperience: []entity.WorkExperience{
			{Company: "Acme", Position: "Engineer", StartDate: &start, Current: true},
		},
	}
}

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"My CV":     "My CV.pdf",
		"  ":        "resume.pdf",
		"":          "resume.pdf",
		"../etc/pw": ".._etc_pw.pdf",
		`a\b:c`:     "a_b_c.pdf",
		"..":        "resume.pdf",
	}
	for in, want := range tests {
		assert.Equal(t, want, FileName(in), "%q", in)
	}
}

func TestExporter_Export(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRasterizer{}

	ok := NewExporter(r, "classic").Export(context.Background(), resume("CV"), dir)

	require.True(t, ok)
	data, err := os.ReadFile(filepath.Join(dir, "CV.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
	assert.Contains(t, r.html, `data-section="experience"`)
	assert.Contains(t, r.html, "Present")
	assert.NotContains(t, r.html, `data-section="education"`, "empty sections are omitted")
}

func TestExporter_Failures(t *testing.T) {
	t.Run("rasterizer error", func(t *testing.T) {
		dir := t.TempDir()

		ok := NewExporter(&fakeRasterizer{err: errors.New("chrome not found")}, "").Export(context.Background(), resume("CV"), dir)

		assert.False(t, ok)
		entries, _ := os.ReadDir(dir)
		assert.Empty(t, entries)
	})

	t.Run("unwritable directory", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")

		ok := NewExporter(&fakeRasterizer{}, "").Export(context.Background(), resume("CV"), missing)

		assert.False(t, ok)
	})
}
