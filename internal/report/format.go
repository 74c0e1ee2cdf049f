package report

import (
	"fmt"
	"strings"
	"time"
)

// Format is an output format of the report.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value to a Format. Empty means PDF.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// ContentType is the media type the report is downloaded as.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// FileName names a report generated at now.
func (f Format) FileName(now time.Time) string {
	return fmt.Sprintf("case_report_%s.%s", now.Format("2006-01-02"), f)
}
