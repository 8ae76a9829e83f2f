package bulk

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/taxdesk/tds-calculator/internal/calculation"
	"github.com/taxdesk/tds-calculator/internal/config"
	"github.com/taxdesk/tds-calculator/internal/domain"
)

func newProcessor(t *testing.T, maxRows int) *Processor {
	t.Helper()
	reg, err := config.LoadRegistry("")
	require.NoError(t, err)
	engine, err := calculation.NewEngineWithConfig(reg, calculation.EngineConfig{Workers: 2})
	require.NoError(t, err)
	return NewProcessor(engine, maxRows)
}

func fixedToday(t *testing.T, today time.Time) {
	t.Helper()
	calculation.SetNowFunc(func() time.Time { return today })
	t.Cleanup(func() { calculation.SetNowFunc(time.Now) })
}

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf := new(bytes.Buffer)
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf
}

func TestReadCSV(t *testing.T) {
	input := "\ufeffDeductee Name, deductee pan ,TDS Section,Transaction Amount,Date of Deduction,Notes\n" +
		"ABC Corporation,ABCPD1234E,194C,150000,2026-01-15,ignored\n" +
		",,,,\n" +
		"John Doe,,194A,\"1,50,000\",15-01-2026\n"

	records, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, 1, records[0].Row)
	assert.Equal(t, "ABC Corporation", records[0].Get(ColDeducteeName))
	assert.Equal(t, "ABCPD1234E", records[0].Get(ColDeducteePAN))
	assert.Equal(t, 3, records[1].Row, "blank rows keep their position")
	assert.Equal(t, "1,50,000", records[1].Get(ColAmount))
	assert.Equal(t, "", records[1].Get(ColPaymentDate))
}

func TestReadMissingColumns(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Deductee Name,TDS Section\nA,194C\n"))
	require.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "Deductee PAN, Transaction Amount, Date of Deduction")

	_, err = ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Read(strings.NewReader("x"), "upload.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestReadXLSXWithDateSerial(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Deductee Name", "Deductee PAN", "TDS Section", "Transaction Amount", "Date of Deduction", "Date of Payment"},
		{"ABC Corporation", "abcpd1234e", "194C", 150000, 46037, "2026-03-10"},
	})

	records, err := Read(buf, "upload.xlsx")
	require.NoError(t, err)
	require.Len(t, records, 1)

	tx, err := ParseRow(records[0])
	require.NoError(t, err)
	assert.Equal(t, "ABCPD1234E", tx.PAN)
	assert.True(t, tx.PANAvailable)
	assert.Equal(t, "150000.00", tx.Amount.String())
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), tx.DeductionDate)
	require.NotNil(t, tx.PaymentDate)
	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), *tx.PaymentDate)
}

func TestParseDate(t *testing.T) {
	want := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input string
	}{
		{"ISO", "2026-01-15"},
		{"Day first dashes", "15-01-2026"},
		{"Day first slashes", "15/01/2026"},
		{"Month name", "15-Jan-2026"},
		{"Timestamp", "2026-01-15 00:00:00"},
		{"Excel serial", "46037"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	empty, err := ParseDate("  ")
	require.NoError(t, err)
	assert.True(t, empty.IsZero())

	_, err = ParseDate("next tuesday")
	assert.Error(t, err)
}

func TestParseRowErrors(t *testing.T) {
	base := map[string]string{
		ColDeducteeName:  "ABC Corporation",
		ColDeducteePAN:   "ABCPD1234E",
		ColSection:       "194C",
		ColAmount:        "150000",
		ColDeductionDate: "2026-01-15",
	}
	with := func(col, value string) Record {
		fields := make(map[string]string, len(base))
		for k, v := range base {
			fields[k] = v
		}
		fields[col] = value
		return Record{Row: 1, Fields: fields}
	}

	tests := []struct {
		name    string
		record  Record
		wantErr string
	}{
		{"Missing section", with(ColSection, ""), "TDS Section is required"},
		{"Missing amount", with(ColAmount, " "), "Transaction Amount is required"},
		{"Malformed amount", with(ColAmount, "lots"), `invalid Transaction Amount "lots"`},
		{"Negative amount", with(ColAmount, "-5"), "must not be negative"},
		{"Malformed deduction date", with(ColDeductionDate, "31-31-2026"), "invalid Date of Deduction"},
		{"Malformed payment date", with(ColPaymentDate, "soon"), "invalid Date of Payment"},
		{"Bad flag", with(ColThresholdExceeded, "maybe"), "Threshold Exceeded must be yes or no"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRow(tt.record)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	tx, err := ParseRow(with(ColThresholdExceeded, "Yes"))
	require.NoError(t, err)
	assert.True(t, tx.ThresholdExceeded)
	assert.Equal(t, domain.Category(""), tx.Category)
}

func TestProcessTemplate(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, WriteTemplate(buf))

	report, err := newProcessor(t, 0).ProcessReader(context.Background(), buf, "tds_bulk_template.xlsx")
	require.NoError(t, err)
	require.Len(t, report.Results, 4)

	tests := []struct {
		name    string
		section string
		tds     string
		rate    string
	}{
		{"ABC Corporation", "194C", "1500.00", "1%"},
		{"John Doe", "194J(b)", "7500.00", "10%"},
		{"XYZ Ltd", "194Q-Exceed", "600.00", "0.1%"},
		{"No PAN Person", "194A", "10000.00", "20% (No PAN)"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := report.Results[i]
			assert.Equal(t, tt.name, r.DeducteeName)
			assert.Equal(t, tt.section, r.Section)
			assert.Equal(t, tt.tds, r.TDSAmount.String())
			assert.Equal(t, tt.rate, r.RateLabel)
			assert.Equal(t, domain.StatusTaxable, r.Status)
			require.NotNil(t, r.DueDate)
			assert.Equal(t, time.Date(2026, time.February, 7, 0, 0, 0, 0, time.UTC), *r.DueDate)
		})
	}

	assert.NotEmpty(t, report.BatchID)
	assert.Equal(t, "tds_bulk_template.xlsx", report.Source)
	assert.Equal(t, "2025-26.1", report.RegistryVersion)
	assert.Equal(t, "elapsed", report.Convention)
	assert.Equal(t, 4, report.Summary.Taxable)
	assert.Equal(t, "19600.00", report.Summary.TotalTDS.String())
}

func TestProcessMixedRows(t *testing.T) {
	fixedToday(t, time.Date(2025, time.October, 3, 15, 0, 0, 0, time.UTC))

	input := "Deductee Name,Deductee PAN,TDS Section,Transaction Amount,Date of Deduction,Date of Payment\n" +
		"Good Co,ABCCD1234E,194C,150000,,\n" +
		"Bad Amount,ABCPD1234E,194C,abc,2025-10-01,\n" +
		"Unknown,ABCPD1234E,999Z,1000,2025-10-01,\n" +
		"Late Payer,ABCPD1234E,194J(b),100000,2025-05-15,2025-07-10\n"

	report, err := newProcessor(t, 10).ProcessReader(context.Background(), strings.NewReader(input), "mixed.csv")
	require.NoError(t, err)
	require.Len(t, report.Results, 4)

	good := report.Results[0]
	assert.Equal(t, 1, good.Row)
	assert.Equal(t, "3000.00", good.TDSAmount.String(), "company rate from the PAN")
	assert.Equal(t, time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC), good.DeductionDate, "blank date means today")

	bad := report.Results[1]
	assert.Equal(t, 2, bad.Row)
	assert.True(t, strings.HasPrefix(bad.Status, "Processing Error: "), bad.Status)
	assert.Equal(t, "Bad Amount", bad.DeducteeName)
	assert.True(t, bad.TDSAmount.IsZero())

	assert.Equal(t, "Invalid Section Code: 999Z", report.Results[2].Status)

	late := report.Results[3]
	assert.True(t, late.IsLate)
	assert.Equal(t, 2, late.MonthsLate)
	assert.Equal(t, "300.00", late.Interest.String())

	assert.Equal(t, 4, report.Summary.Rows)
	assert.Equal(t, 2, report.Summary.Errors)
	assert.Equal(t, 1, report.Summary.Late)
}

func TestProcessRowLimit(t *testing.T) {
	records := make([]Record, 3)
	_, err := newProcessor(t, 2).Process(context.Background(), records, "big.csv")
	assert.ErrorIs(t, err, ErrTooManyRows)
}

func TestProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upload.csv")
	content := "Deductee Name,Deductee PAN,TDS Section,Transaction Amount,Date of Deduction\nA,,194H,20000,2025-06-01\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	report, err := newProcessor(t, 0).ProcessFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "upload.csv", report.Source)
	assert.Equal(t, "Not Provided", report.Results[0].DisplayPAN())
}

func TestTemplateLayout(t *testing.T) {
	f, err := Template()
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(TemplateSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, RequiredColumns, rows[0][:len(RequiredColumns)])
	assert.Equal(t, "194Q-Exceed", rows[3][2])
}
