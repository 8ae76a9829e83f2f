package output

import (
	"bytes"
	"context"
	"encoding/json"
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
	dec "github.com/taxdesk/tds-calculator/pkg/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

// buildTestReport runs four representative rows through the engine:
// taxable and paid on time, taxable and paid late, under threshold, unknown section.
func buildTestReport(t *testing.T) *domain.BatchReport {
	t.Helper()
	reg, err := config.LoadRegistry("")
	require.NoError(t, err)
	engine := calculation.NewEngine(reg)

	txs := []domain.Transaction{
		{Row: 1, DeducteeName: "ABC Corporation", PAN: "ABCCD1234E", PANAvailable: true, SectionCode: "194C",
			Amount: dec.NewMoneyFromInt(150000), DeductionDate: day(2025, time.June, 10), PaymentDate: dayPtr(2025, time.July, 5)},
		{Row: 2, DeducteeName: "John Doe", PAN: "BXYPJ5678K", PANAvailable: true, SectionCode: "194J(b)",
			Amount: dec.NewMoneyFromInt(100000), DeductionDate: day(2025, time.May, 15), PaymentDate: dayPtr(2025, time.July, 10)},
		{Row: 3, DeducteeName: "Small Vendor", PAN: "ABCPD1234E", PANAvailable: true, SectionCode: "194C",
			Amount: dec.NewMoneyFromInt(20000), DeductionDate: day(2025, time.June, 12)},
		{Row: 4, DeducteeName: "Typo Ltd", SectionCode: "999Z",
			Amount: dec.NewMoneyFromInt(5000), DeductionDate: day(2025, time.June, 12)},
	}
	results, err := engine.CalculateBatch(context.Background(), txs)
	require.NoError(t, err)

	return &domain.BatchReport{
		BatchID:         "batch-1",
		Source:          "fixture.csv",
		GeneratedAt:     time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC),
		RegistryVersion: reg.Version,
		Convention:      "elapsed",
		Results:         results,
		Summary:         domain.Summarize(results),
	}
}

func TestFixtureSummary(t *testing.T) {
	s := buildTestReport(t).Summary
	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 2, s.Taxable)
	assert.Equal(t, 1, s.UnderThreshold)
	assert.Equal(t, 1, s.Errors)
	assert.Equal(t, 1, s.Late)
	assert.Equal(t, "13000.00", s.TotalTDS.String())
	assert.Equal(t, "300.00", s.TotalInterest.String())
	assert.Equal(t, "13300.00", s.TotalPayable.String())
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)

	assert.Contains(t, content, "TDS CALCULATION REPORT")
	assert.Contains(t, content, "Source:     fixture.csv")
	assert.Contains(t, content, "Invalid Section Code: 999Z")
	assert.Contains(t, content, "₹13,000")
	assert.Contains(t, content, "BY SECTION")
	assert.Contains(t, content, "Rule table version: 2025-26.1")
	bySection := content[strings.Index(content, "BY SECTION"):]
	assert.Less(t, strings.Index(bySection, "194J(b)"), strings.Index(bySection, "194C"), "sections are ordered by TDS")
}

func TestSummaryFormatter(t *testing.T) {
	out, err := SummaryFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Total Transactions:  4")
	assert.Contains(t, content, "Total Payable:       ₹13,300")
	assert.NotContains(t, content, "ABC Corporation")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 5, "header + 4 rows")
	assert.Equal(t, "ABC Corporation,ABCCD1234E,Company/Firm,194C,150000.00,2%,3000.00,10-Jun-2025,07-Jul-2025,05-Jul-2025,0.00,3000.00,Taxable", lines[1])
	assert.Equal(t, "John Doe,BXYPJ5678K,Individual/HUF,194J(b),100000.00,10%,10000.00,15-May-2025,07-Jun-2025,10-Jul-2025,300.00,10300.00,Taxable", lines[2])
	assert.True(t, strings.HasPrefix(lines[4], "Typo Ltd,Not Provided,Error,999Z,"), lines[4])
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 5)
	assert.Len(t, strings.Split(lines[0], ","), 25)
	assert.Contains(t, lines[2], "2025-05-15,2025-06-07,7th of the following month,2025-07-10,Yes,2,300.00,10300.00,2025-26")
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	var decoded struct {
		BatchID string `json:"batch_id"`
		Results []struct {
			Section   string  `json:"section"`
			TDSAmount string  `json:"tds_amount"`
			Rate      *string `json:"rate"`
		} `json:"results"`
		Summary struct {
			TotalTDS string `json:"total_tds"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "batch-1", decoded.BatchID)
	assert.Equal(t, "13000.00", decoded.Summary.TotalTDS)
	require.Len(t, decoded.Results, 4)
	assert.Equal(t, "3000.00", decoded.Results[0].TDSAmount)
	assert.Nil(t, decoded.Results[3].Rate, "unknown section has no rate")
}

func TestXLSXFormatter(t *testing.T) {
	out, err := XLSXFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{SheetResults, SheetSummary, SheetSections}, f.GetSheetList())

	rows, err := f.GetRows(SheetResults, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, ResultColumns, rows[0])
	assert.Equal(t, "194C", rows[1][3])
	assert.Equal(t, "150000", rows[1][4])
	assert.Equal(t, "Invalid Section Code: 999Z", rows[4][12])

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	values := make(map[string]string)
	for _, row := range summary {
		if len(row) == 2 {
			values[row[0]] = row[1]
		}
	}
	assert.Equal(t, "fixture.csv", values["Source"])
	assert.Equal(t, "₹13,000", values["Total TDS"])

	sections, err := f.GetRows(SheetSections, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, []string{"194J(b)", "1", "100000", "10000", "300"}, sections[1])
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<h1>TDS Calculation Report</h1>")
	assert.Contains(t, content, `<tr class="late">`)
	assert.Contains(t, content, `<tr class="error">`)
	assert.Contains(t, content, "Invalid Section Code: 999Z")
	assert.Contains(t, content, "<li>Rule table version: 2025-26.1</li>")
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console", "console.golden", ConsoleFormatter{}},
		{"summary", "summary.golden", SummaryFormatter{}},
		{"csv", "csv.golden", CSVFormatter{}},
		{"csv_detailed", "detailed_csv.golden", CSVDetailedExporter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
	}

	report := buildTestReport(t)
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.formatter.Format(report)
			require.NoError(t, err)
			goldenPath := filepath.Join("testdata", tc.golden)
			if update {
				// only first line to keep golden small & stable
				require.NoError(t, os.WriteFile(goldenPath, []byte(firstLine(string(out))+"\n"), 0o644))
			}
			data, err := os.ReadFile(goldenPath)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(out), strings.TrimSpace(string(data))),
				"output does not match golden prefix %q", strings.TrimSpace(string(data)))
		})
	}
}

func TestFormatterAliasResolution(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"excel", "xlsx"},
		{"console-lite", "summary"},
		{"csv-detailed", "detailed-csv"},
		{" JSON ", "json"},
		{"table", "console"},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			f := GetFormatterByName(tt.alias)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("pdf"))
	assert.Equal(t, []string{"console", "csv", "detailed-csv", "html", "json", "summary", "xlsx"}, AvailableFormatterNames())
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "count", Ext: "txt", F: func(r *domain.BatchReport) ([]byte, error) {
		return []byte(intToString(len(r.Results))), nil
	}}
	out, err := f.Format(buildTestReport(t))
	require.NoError(t, err)
	assert.Equal(t, "4", string(out))
	assert.Equal(t, "count", f.Name())
	assert.Equal(t, "txt", f.Extension())
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
