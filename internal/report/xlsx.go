package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	hearingsSheet = "Hearings"
	paymentsSheet = "Payments"
)

// WriteXLSX renders the document as a workbook with a summary sheet and
// flat hearing and payment sheets keyed by client name.
func WriteXLSX(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{hearingsSheet, paymentsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	summaryRows := doc.Summary.Rows
	if len(summaryRows) == 0 {
		summaryRows = [][]string{{doc.Summary.Empty}}
	}
	row, err := writeRows(f, summarySheet, 1, doc.Summary.Header, summaryRows, bold)
	if err != nil {
		return err
	}
	var totals [][]string
	for _, t := range doc.Totals {
		totals = append(totals, []string{t.Label, t.Value})
	}
	if _, err := writeRows(f, summarySheet, row+1, nil, totals, bold); err != nil {
		return err
	}

	var hearings, payments [][]string
	for _, s := range doc.Sections {
		for _, r := range s.Hearings.Rows {
			hearings = append(hearings, append([]string{s.Name}, r...))
		}
		for _, r := range s.Payments.Rows {
			payments = append(payments, append([]string{s.Name}, r...))
		}
	}
	if len(hearings) == 0 {
		hearings = [][]string{{NoHearings}}
	}
	if len(payments) == 0 {
		payments = [][]string{{NoPayments}}
	}

	if _, err := writeRows(f, hearingsSheet, 1, []string{"Client", "Date", "Note"}, hearings, bold); err != nil {
		return err
	}
	if _, err := writeRows(f, paymentsSheet, 1, []string{"Client", "Date", "Amount", "Mode", "Note"}, payments, bold); err != nil {
		return err
	}

	for _, name := range []string{summarySheet, hearingsSheet, paymentsSheet} {
		if err := f.SetColWidth(name, "A", "G", 20); err != nil {
			return fmt.Errorf("failed to size columns: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeRows writes an optional bold header and the rows starting at row
// start, and returns the next free row.
func writeRows(f *excelize.File, sheet string, start int, header []string, rows [][]string, headerStyle int) (int, error) {
	row := start
	if header != nil {
		if err := setRow(f, sheet, row, header); err != nil {
			return 0, err
		}
		if err := f.SetRowStyle(sheet, row, row, headerStyle); err != nil {
			return 0, fmt.Errorf("failed to style header: %w", err)
		}
		row++
	}
	for _, r := range rows {
		if err := setRow(f, sheet, row, r); err != nil {
			return 0, err
		}
		row++
	}
	return row, nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
