package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF renders the document as a paginated PDF with one bordered row
// per line: a 100mm label cell and a 50mm amount cell.
func RenderPDF(doc Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(200, 10, doc.Title, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	for i, section := range doc.Sections {
		if i > 0 {
			pdf.Ln(10)
		}

		pdf.SetFont("Arial", "B", 12)
		if i == 0 {
			pdf.CellFormat(100, 10, "Category", "1", 0, "", false, 0, "")
			pdf.CellFormat(50, 10, "Amount ($)", "1", 1, "", false, 0, "")
		} else {
			pdf.CellFormat(200, 10, section.Title, "", 1, "", false, 0, "")
		}

		pdf.SetFont("Arial", "", 12)
		for _, r := range section.Rows {
			pdf.CellFormat(100, 10, r.Label, "1", 0, "", false, 0, "")
			pdf.CellFormat(50, 10, r.Amount, "1", 1, "", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
