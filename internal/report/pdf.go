package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfFont       = "Helvetica"
	pdfLineHeight = 6.0
)

var (
	summaryWidths = []float64{30, 42, 24, 20, 28, 16, 30}
	hearingWidths = []float64{30, 160}
	paymentWidths = []float64{30, 35, 25, 100}
)

// WritePDF renders the document as an A4 PDF: the summary table and totals
// first, then one page per client.
func WritePDF(w io.Writer, doc *Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("case ledger", true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFont, "", 9)
	pdf.CellFormat(0, pdfLineHeight, "Generated "+doc.GeneratedAt.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdfTable(pdf, tr, doc.Summary, summaryWidths, 7)
	pdf.Ln(4)
	pdfFields(pdf, tr, doc.Totals)

	for _, section := range doc.Sections {
		pdf.AddPage()
		pdf.SetFont(pdfFont, "B", 14)
		pdf.CellFormat(0, 9, tr(section.Name), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdfFields(pdf, tr, section.Details)
		pdf.Ln(4)
		pdfTable(pdf, tr, section.Hearings, hearingWidths, 9)
		pdf.Ln(4)
		pdfTable(pdf, tr, section.Payments, paymentWidths, 9)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to lay out report: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func pdfTable(pdf *fpdf.Fpdf, tr func(string) string, t Table, widths []float64, fontSize float64) {
	pdf.SetFont(pdfFont, "B", 11)
	pdf.CellFormat(0, 8, tr(t.Title), "", 1, "L", false, 0, "")

	if len(t.Rows) == 0 {
		pdf.SetFont(pdfFont, "I", fontSize)
		pdf.CellFormat(0, pdfLineHeight, tr(t.Empty), "", 1, "L", false, 0, "")
		return
	}

	pdf.SetFont(pdfFont, "B", fontSize)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range t.Header {
		pdf.CellFormat(widths[i], pdfLineHeight, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", fontSize)
	for _, row := range t.Rows {
		for i, cell := range row {
			pdf.CellFormat(widths[i], pdfLineHeight, fit(pdf, tr(cell), widths[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func pdfFields(pdf *fpdf.Fpdf, tr func(string) string, fields []Field) {
	for _, f := range fields {
		pdf.SetFont(pdfFont, "B", 9)
		pdf.CellFormat(40, pdfLineHeight, tr(f.Label), "", 0, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 9)
		pdf.CellFormat(0, pdfLineHeight, fit(pdf, tr(f.Value), 150), "", 1, "L", false, 0, "")
	}
}

// fit shortens s until it fits a cell of the given width. s is already
// translated to the single-byte font encoding, so it is cut by bytes.
func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	const padding = 2
	if pdf.GetStringWidth(s) <= width-padding {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width-padding {
		s = s[:len(s)-1]
	}
	return s + "..."
}
