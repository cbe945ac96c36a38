// Package pdfstream draws a render.Document as a vector PDF with fpdf.
package pdfstream

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"resume_backend/internal/render"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
	bulletMark = "• "
)

// Renderer writes documents as A4 portrait PDFs.
type Renderer struct {
	// Compress deflates page streams. Tests turn it off to read the text back.
	Compress bool
}

// NewRenderer returns a Renderer with compression on.
func NewRenderer() *Renderer {
	return &Renderer{Compress: true}
}

// Render draws doc and writes the finished PDF to w. Nothing is written to w
// if drawing fails.
func (r *Renderer) Render(w io.Writer, doc render.Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.Compress)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("resume_backend", true)
	pdf.AddPage()

	d := &drawer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	d.header(doc.Header)
	for _, s := range doc.Sections {
		d.section(s)
	}

	if pdf.Err() {
		return fmt.Errorf("draw pdf: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

type drawer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (d *drawer) header(h render.Header) {
	d.pdf.SetFont(fontFamily, "B", 22)
	d.pdf.CellFormat(0, 11, d.tr(h.Name), "", 1, "C", false, 0, "")

	d.pdf.SetFont(fontFamily, "", 11)
	if h.Contact != "" {
		d.pdf.CellFormat(0, lineHeight, d.tr(h.Contact), "", 1, "C", false, 0, "")
	}
	for _, l := range h.Links {
		d.pdf.CellFormat(0, lineHeight, d.tr(l), "", 1, "C", false, 0, "")
	}
	d.pdf.Ln(4)
}

func (d *drawer) section(s render.Section) {
	d.pdf.SetFont(fontFamily, "B", 15)
	d.pdf.CellFormat(0, 8, d.tr(s.Heading), "", 1, "L", false, 0, "")
	d.rule()

	if s.Body != "" {
		d.pdf.SetFont(fontFamily, "", 11)
		d.pdf.MultiCell(0, lineHeight, d.tr(s.Body), "", "L", false)
	}
	for _, e := range s.Entries {
		d.entry(e)
	}
	d.pdf.Ln(4)
}

func (d *drawer) entry(e render.Entry) {
	d.pdf.SetFont(fontFamily, "B", 12)
	d.pdf.CellFormat(0, 7, d.tr(e.Title), "", 1, "L", false, 0, "")

	d.pdf.SetFont(fontFamily, "", 11)
	if e.Subtitle != "" {
		d.pdf.CellFormat(0, lineHeight, d.tr(e.Subtitle), "", 1, "L", false, 0, "")
	}
	if e.Period != "" {
		d.pdf.SetFont(fontFamily, "I", 11)
		d.pdf.CellFormat(0, lineHeight, d.tr(e.Period), "", 1, "L", false, 0, "")
		d.pdf.SetFont(fontFamily, "", 11)
	}

	left, _, _, _ := d.pdf.GetMargins()
	for _, b := range e.Bullets {
		d.pdf.SetX(left + 4)
		d.pdf.MultiCell(0, lineHeight, d.tr(bulletMark+b), "", "L", false)
	}
	d.pdf.Ln(2)
}

func (d *drawer) rule() {
	left, _, right, _ := d.pdf.GetMargins()
	width, _ := d.pdf.GetPageSize()
	y := d.pdf.GetY()
	d.pdf.SetDrawColor(226, 232, 240)
	d.pdf.Line(left, y, width-right, y)
	d.pdf.Ln(2)
}
