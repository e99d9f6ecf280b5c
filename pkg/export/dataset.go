package export

import (
	"fmt"
	"strings"
)

// Dataset defines tabular export content. Each row holds one value per header,
// in header order.
type Dataset struct {
	Title     string
	SheetName string
	Headers   []string
	Widths    []float64
	Rows      [][]interface{}
}

// Format names a supported output encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// ParseFormat normalises a client supplied format, defaulting to xlsx.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// ContentType returns the MIME type of the rendered file.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	if f == "" {
		return string(FormatXLSX)
	}
	return string(f)
}

func (d Dataset) validate() error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("dataset requires at least one header")
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Headers) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), len(d.Headers))
		}
	}
	return nil
}

func cellString(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

// Renderer turns a dataset into file bytes.
type Renderer interface {
	Render(data Dataset) ([]byte, error)
}

// Registry picks the renderer for a format.
type Registry struct {
	renderers map[Format]Renderer
}

// NewRegistry wires the default xlsx, csv and pdf renderers.
func NewRegistry() *Registry {
	return &Registry{renderers: map[Format]Renderer{
		FormatXLSX: NewXLSXExporter(),
		FormatCSV:  NewCSVExporter(),
		FormatPDF:  NewPDFExporter(),
	}}
}

// Render encodes the dataset in the requested format.
func (r *Registry) Render(format Format, data Dataset) ([]byte, error) {
	renderer, ok := r.renderers[format]
	if !ok {
		return nil, fmt.Errorf("no renderer for format %q", format)
	}
	return renderer.Render(data)
}
