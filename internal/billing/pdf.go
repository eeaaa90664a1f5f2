package billing

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// BuildDocumentPDF renders a billing document as a printable statement
func BuildDocumentPDF(doc *Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Accommodation Billing Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Month: %s", doc.YearMonth))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Team: %s", doc.TeamName))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Issued to: %s (%s)", doc.IssuedToWorkerName, doc.IssuedToType))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Status: %s", doc.Status))
	pdf.Ln(5)
	if doc.Memo != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Memo: %s", doc.Memo))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(70, 6, "Item", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Category", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, item := range doc.LineItems {
		pdf.CellFormat(70, 6, item.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, string(item.Target), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.0f", item.Amount), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(120, 6, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, fmt.Sprintf("%.0f", TotalLineItems(doc.LineItems)), "1", 0, "R", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
