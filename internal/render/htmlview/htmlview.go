// Package htmlview renders a render.Document as a self-contained HTML page for
// preview and for rasterizing to PDF in a headless browser.
package htmlview

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"

	"resume_backend/internal/render"
)

// DefaultTemplate is used when the requested template is unknown.
const DefaultTemplate = "modern"

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

var page = template.Must(template.ParseFS(templateFS, "templates/resume.html.tmpl"))

// style holds the CSS that differs between visual templates.
type style struct {
	Page    template.CSS
	Heading template.CSS
}

var styles = map[string]style{
	"modern": {
		Page:    "background: #fff; box-shadow: 0 4px 12px rgba(0,0,0,.12); border-radius: 8px;",
		Heading: "border-bottom: 2px solid #e2e8f0; padding-bottom: 5px;",
	},
	"classic": {
		Page:    "background: #fff; border: 2px solid #e2e8f0;",
		Heading: "text-transform: uppercase; letter-spacing: .05em;",
	},
	"minimal": {
		Page:    "background: #f9fafb;",
		Heading: "font-weight: 600;",
	},
}

type view struct {
	Name  string
	Style style
	Doc   render.Document
}

// Templates lists the available template names in sorted order.
func Templates() []string {
	names := make([]string, 0, len(styles))
	for n := range styles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Render writes doc as HTML using the named template. Unknown names fall back
// to DefaultTemplate.
func Render(w io.Writer, doc render.Document, name string) error {
	st, ok := styles[name]
	if !ok {
		name, st = DefaultTemplate, styles[DefaultTemplate]
	}
	if err := page.Execute(w, view{Name: name, Style: st, Doc: doc}); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// RenderString is Render into a string.
func RenderString(doc render.Document, name string) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, doc, name); err != nil {
		return "", err
	}
	return buf.String(), nil
}
