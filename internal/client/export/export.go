// Package export renders a resume on the client and saves it as a PDF,
// without another request to the server.
package export

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"resume_backend/internal/feature/resume/domain/entity"
	"resume_backend/internal/render"
	"resume_backend/internal/render/htmlview"
)

// Rasterizer turns a self-contained HTML page into PDF bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string) ([]byte, error)
}

// Exporter renders resumes through the HTML path.
type Exporter struct {
	rasterizer Rasterizer
	template   string
}

// NewExporter creates an Exporter. An unknown template falls back to the default one.
func NewExporter(r Rasterizer, template string) *Exporter {
	return &Exporter{rasterizer: r, template: template}
}

// FileName is the name Export writes for a title: the title itself with path
// separators replaced, or "resume.pdf" when the title is blank.
func FileName(title string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" || name == "." || name == ".." {
		name = "resume"
	}
	return name + ".pdf"
}

// Export writes dir/FileName(r.Title). It reports success; failures are logged.
func (e *Exporter) Export(ctx context.Context, r entity.Resume, dir string) bool {
	html, err := htmlview.RenderString(render.FromResume(r), e.template)
	if err != nil {
		slog.Error("render resume html failed", "resume_id", r.ID, "error", err)
		return false
	}
	pdf, err := e.rasterizer.Rasterize(ctx, html)
	if err != nil {
		slog.Error("rasterize resume failed", "resume_id", r.ID, "error", err)
		return false
	}
	path := filepath.Join(dir, FileName(r.Title))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		slog.Error("write resume pdf failed", "path", path, "error", err)
		return false
	}
	slog.Info("resume exported", "path", path)
	return true
}
