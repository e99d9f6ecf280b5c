package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfUsableWidth = 277.0
	pdfLineHeight  = 5.0
)

// PDFExporter renders datasets into a landscape tabular PDF. Column widths
// follow Dataset.Widths proportionally and long text wraps inside its cell.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(strings.ToUpper(data.Title)), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	widths := columnWidths(data)

	pdf.SetFont("Arial", "B", 10)
	for i, header := range data.Headers {
		pdf.CellFormat(widths[i], 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		lines := 1
		split := make([][]string, len(row))
		for i, value := range row {
			split[i] = splitLines(pdf, tr(cellString(value)), widths[i])
			if len(split[i]) > lines {
				lines = len(split[i])
			}
		}
		height := float64(lines) * pdfLineHeight
		_, pageHeight := pdf.GetPageSize()
		_, _, _, bottom := pdf.GetMargins()
		if pdf.GetY()+height > pageHeight-bottom {
			pdf.AddPage()
		}
		x, y := pdf.GetXY()
		for i := range row {
			pdf.Rect(x, y, widths[i], height, "D")
			pdf.SetXY(x, y)
			pdf.MultiCell(widths[i], pdfLineHeight, strings.Join(split[i], "\n"), "", "L", false)
			x += widths[i]
		}
		pdf.SetXY(10, y+height)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(data Dataset) []float64 {
	widths := make([]float64, len(data.Headers))
	total := 0.0
	for i := range data.Headers {
		w := 10.0
		if i < len(data.Widths) && data.Widths[i] > 0 {
			w = data.Widths[i]
		}
		widths[i] = w
		total += w
	}
	for i := range widths {
		widths[i] = widths[i] / total * pdfUsableWidth
	}
	return widths
}

func splitLines(pdf *gofpdf.Fpdf, text string, width float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		for _, chunk := range pdf.SplitLines([]byte(paragraph), width-2) {
			lines = append(lines, string(chunk))
		}
		if paragraph == "" {
			lines = append(lines, "")
		}
	}
	return lines
}
