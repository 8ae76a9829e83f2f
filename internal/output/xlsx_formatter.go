package output

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// Sheet names of the xlsx report
const (
	SheetResults  = "TDS Results"
	SheetSummary  = "Summary"
	SheetSections = "By Section"
)

// money columns (1-based) of ResultColumns written as numbers
var xlsxMoneyColumns = map[int]bool{5: true, 7: true, 11: true, 12: true}

// XLSXFormatter writes a workbook with results, summary and per-section sheets.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string      { return "xlsx" }
func (x XLSXFormatter) Extension() string { return "xlsx" }

func (x XLSXFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetResults); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetSummary, SheetSections} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, err
	}

	if err := writeResultsSheet(f, report, bold, amount); err != nil {
		return nil, fmt.Errorf("write %s sheet: %w", SheetResults, err)
	}
	if err := writeSummarySheet(f, report, bold); err != nil {
		return nil, fmt.Errorf("write %s sheet: %w", SheetSummary, err)
	}
	if err := writeSectionsSheet(f, report, bold, amount); err != nil {
		return nil, fmt.Errorf("write %s sheet: %w", SheetSections, err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeResultsSheet(f *excelize.File, report *domain.BatchReport, bold, amount int) error {
	if err := writeRow(f, SheetResults, 1, stringsToCells(ResultColumns)); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(ResultColumns))
	if err := f.SetCellStyle(SheetResults, "A1", lastCol+"1", bold); err != nil {
		return err
	}

	for i, r := range report.Results {
		text := resultRow(r)
		cells := make([]any, len(text))
		for c, v := range text {
			cells[c] = v
		}
		for col := range xlsxMoneyColumns {
			cells[col-1] = moneyCell(text[col-1])
		}
		if err := writeRow(f, SheetResults, i+2, cells); err != nil {
			return err
		}
	}

	if n := len(report.Results); n > 0 {
		for col := range xlsxMoneyColumns {
			name, _ := excelize.ColumnNumberToName(col)
			if err := f.SetCellStyle(SheetResults, fmt.Sprintf("%s2", name), fmt.Sprintf("%s%d", name, n+1), amount); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(SheetResults, "A", lastCol, 18); err != nil {
		return err
	}
	return f.SetPanes(SheetResults, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeSummarySheet(f *excelize.File, report *domain.BatchReport, bold int) error {
	rowNum := 1
	meta := [][]any{
		{"Source", report.Source},
		{"Batch", report.BatchID},
		{"Rule Table", report.RegistryVersion},
		{"Interest Convention", report.Convention},
	}
	if !report.GeneratedAt.IsZero() {
		meta = append(meta, []any{"Generated", report.GeneratedAt.Format("02-Jan-2006 15:04:05 MST")})
	}
	for _, row := range meta {
		if err := writeRow(f, SheetSummary, rowNum, row); err != nil {
			return err
		}
		rowNum++
	}
	rowNum++

	for _, row := range SummaryRows(report.Summary) {
		if err := writeRow(f, SheetSummary, rowNum, []any{row.Label, row.Value}); err != nil {
			return err
		}
		rowNum++
	}
	if err := f.SetCellStyle(SheetSummary, "A1", fmt.Sprintf("A%d", rowNum), bold); err != nil {
		return err
	}
	return f.SetColWidth(SheetSummary, "A", "B", 24)
}

func writeSectionsSheet(f *excelize.File, report *domain.BatchReport, bold, amount int) error {
	if err := writeRow(f, SheetSections, 1, []any{"Section", "Rows", "Amount", "TDS", "Interest"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSections, "A1", "E1", bold); err != nil {
		return err
	}
	sections := AnalyzeSections(report)
	for i, s := range sections {
		row := []any{s.Section, s.Rows, s.Amount.InexactFloat64(), s.TDS.InexactFloat64(), s.Interest.InexactFloat64()}
		if err := writeRow(f, SheetSections, i+2, row); err != nil {
			return err
		}
	}
	if len(sections) > 0 {
		if err := f.SetCellStyle(SheetSections, "C2", fmt.Sprintf("E%d", len(sections)+1), amount); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetSections, "A", "E", 16)
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func stringsToCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// moneyCell turns a two-place decimal string into a number cell
func moneyCell(s string) any {
	m, err := parseMoneyCell(s)
	if err != nil {
		return s
	}
	return m
}
