package render

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/careerforge/resume-builder/internal/schemas"
	"github.com/careerforge/resume-builder/internal/types"
)

// Bundle holds every deliverable produced from one document.
type Bundle struct {
	HTML string
	PDF  []byte
	Text string
}

// Exporter validates a document and produces its deliverables.
type Exporter struct {
	pdf PDFRenderer
}

func NewExporter(pdf PDFRenderer) *Exporter {
	return &Exporter{pdf: pdf}
}

// ExportPDF validates, renders, and prints the document as a PDF.
func (e *Exporter) ExportPDF(ctx context.Context, doc types.ResumeDocument, templateName string) ([]byte, error) {
	html, err := e.renderValidated(doc, templateName)
	if err != nil {
		return nil, err
	}
	return e.pdf.RenderHTMLToPDF(ctx, html)
}

// ExportText validates and renders the document as plain text.
func (e *Exporter) ExportText(doc types.ResumeDocument, templateName string) (string, error) {
	html, err := e.renderValidated(doc, templateName)
	if err != nil {
		return "", err
	}
	return PlainText(html)
}

// ExportBundle produces all deliverables from one validation pass, printing
// the PDF and extracting text concurrently.
func (e *Exporter) ExportBundle(ctx context.Context, doc types.ResumeDocument, templateName string) (*Bundle, error) {
	html, err := e.renderValidated(doc, templateName)
	if err != nil {
		return nil, err
	}

	bundle := &Bundle{HTML: html}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pdf, err := e.pdf.RenderHTMLToPDF(gctx, html)
		if err != nil {
			return err
		}
		bundle.PDF = pdf
		return nil
	})
	g.Go(func() error {
		text, err := PlainText(html)
		if err != nil {
			return err
		}
		bundle.Text = text
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (e *Exporter) renderValidated(doc types.ResumeDocument, templateName string) (string, error) {
	if err := schemas.ValidateDocument(doc); err != nil {
		return "", err
	}
	return RenderHTML(doc, templateName)
}

// Filename derives a download filename from the signed-in email's local
// part, e.g. dana@example.com -> dana_resume.pdf.
func Filename(email, extension string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}
	local = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, local)
	if local == "" {
		local = "resume"
	}
	return local + "_resume." + extension
}
