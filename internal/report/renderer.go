package report

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
)

// ErrRender marks HTML or PDF generation failures.
var ErrRender = errors.New("report rendering failed")

//go:embed templates/report.html
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("report.html").Funcs(template.FuncMap{
		"pct": func(v float64) string { return fmt.Sprintf("%.1f", v*100) },
	}).ParseFS(templateFS, "templates/report.html"),
)

// RenderMarkup renders the report as a standalone HTML page.
func RenderMarkup(r *Report) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("%w: executing template: %w", ErrRender, err)
	}
	return buf.String(), nil
}

var (
	dropBlocks = regexp.MustCompile(`(?s)<(style|script|head)[^>]*>.*?</(style|script|head)>`)
	blockEnds  = regexp.MustCompile(`</(p|h1|h2|h3|li|div|tr)>|<br\s*/?>`)
	anyTag     = regexp.MustCompile(`<[^>]+>`)
)

// MarkupToDocument converts rendered report markup into a PDF
// document. Styling is discarded; the textual content is laid out
// line by line.
func MarkupToDocument(markup string) ([]byte, error) {
	text := dropBlocks.ReplaceAllString(markup, "")
	text = blockEnds.ReplaceAllString(text, "\n")
	text = anyTag.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pdf.MultiCell(0, 6, line, "", "L", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: writing pdf: %w", ErrRender, err)
	}

	return buf.Bytes(), nil
}
