package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptLine is a single lesson row on a booking receipt.
type ReceiptLine struct {
	Date     string
	Time     string
	Duration int
	Price    float64
}

// Receipt describes a booking summary rendered into a PDF document.
type Receipt struct {
	Title          string
	Reference      string
	StudentName    string
	InstructorName string
	Lines          []ReceiptLine
	Total          float64
	IssuedAt       time.Time
}

// ReceiptExporter renders booking receipts into a basic PDF.
type ReceiptExporter struct{}

// NewReceiptExporter constructs a receipt exporter.
func NewReceiptExporter() *ReceiptExporter {
	return &ReceiptExporter{}
}

// Render creates a PDF document for the supplied receipt.
func (e *ReceiptExporter) Render(r Receipt) ([]byte, error) {
	if len(r.Lines) == 0 {
		return nil, fmt.Errorf("receipt requires at least one lesson")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	title := r.Title
	if title == "" {
		title = "Booking summary"
	}
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "", 10)
	writeField := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(40, 7, label, "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "", false, 0, "")
	}
	writeField("Reference", r.Reference)
	writeField("Student", r.StudentName)
	writeField("Instructor", r.InstructorName)
	if !r.IssuedAt.IsZero() {
		writeField("Issued", r.IssuedAt.UTC().Format("2006-01-02 15:04 UTC"))
	}
	pdf.Ln(4)

	headers := []string{"Date", "Time", "Duration", "Price"}
	widths := []float64{55, 40, 45, 50}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, line := range r.Lines {
		pdf.CellFormat(widths[0], 7, line.Date, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 7, line.Time, "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d min", line.Duration), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, formatAmount(line.Price), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[3], 8, formatAmount(r.Total), "1", 1, "R", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func formatAmount(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}
