package bulk

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// TemplateSheet is the sheet name of the sample workbook
const TemplateSheet = "Transactions"

var templateHeader = append(append([]string{}, RequiredColumns...), ColPaymentDate, ColCategory, ColThresholdType)

var templateRows = [][]any{
	{"ABC Corporation", "ABCPD1234E", "194C", 150000, "2026-01-15", "", "", ""},
	{"John Doe", "BXYPJ5678K", "194J(b)", 75000, "2026-01-20", "", "", ""},
	{"XYZ Ltd", "XYZPF9012L", "194Q-Exceed", 600000, "2026-01-10", "", "", ""},
	{"No PAN Person", "", "194A", 50000, "2026-01-05", "", "", ""},
}

// Template builds the sample upload workbook. The caller closes it.
func Template() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", TemplateSheet); err != nil {
		_ = f.Close()
		return nil, err
	}

	header := make([]any, len(templateHeader))
	for i, h := range templateHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(TemplateSheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}
	for i, row := range templateRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(TemplateSheet, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(templateHeader), 1)
		_ = f.SetCellStyle(TemplateSheet, "A1", last, bold)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(templateHeader))
	_ = f.SetColWidth(TemplateSheet, "A", lastCol, 20)
	return f, nil
}

// WriteTemplate writes the sample workbook to w
func WriteTemplate(w io.Writer) error {
	f, err := Template()
	if err != nil {
		return fmt.Errorf("build template: %w", err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}
