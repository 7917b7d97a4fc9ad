package app

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/hyperifyio/htmlparse/internal/pipeline"
)

// writeResultPDF renders an extraction result, and the model completion when
// present, to a simple A4 PDF. Text is mapped to cp1252 for the core fonts;
// characters outside it are dropped by the translator.
func writeResultPDF(r pipeline.Result, completion string, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.Title, true)
	pdf.SetAuthor(r.Author, true)
	pdf.SetCreator("htmlparse "+r.Version, true)
	pdf.AddPage()

	title := r.Title
	if title == "" {
		title = r.SiteName
	}
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	if r.Author != "" {
		pdf.CellFormat(0, 5, tr("By "+r.Author), "", 1, "L", false, 0, "")
	}
	if r.URL != "" && r.URL != "unknown" {
		pdf.WriteLinkString(5, tr(r.URL), r.URL)
		pdf.Ln(5)
	}
	meta := fmt.Sprintf("%s · %d words · extracted %s", r.Domain, r.WordCount, r.ExtractedAt)
	pdf.CellFormat(0, 5, tr(meta), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	writeParagraphs(pdf, tr, r.Content)

	if c := strings.TrimSpace(completion); c != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, "Completion", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		writeParagraphs(pdf, tr, c)
	}

	return pdf.OutputFileAndClose(outPath)
}

// writeParagraphs renders text line by line; blank lines become vertical
// space and bullet lines are indented.
func writeParagraphs(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	left, _, _, _ := pdf.GetMargins()
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			pdf.Ln(3)
			continue
		}
		if strings.HasPrefix(s, "•") {
			pdf.SetX(left + 4)
		}
		pdf.MultiCell(0, 5, tr(s), "", "L", false)
	}
}
