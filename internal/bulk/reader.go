package bulk

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrMissingColumns is returned when the header lacks a required column
	ErrMissingColumns = errors.New("missing required columns")
	// ErrUnsupportedFile is returned for extensions other than .xlsx and .csv
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrEmptyFile is returned when there is no header row
	ErrEmptyFile = errors.New("file has no header row")
)

// Record is one data row keyed by canonical column name. Row is the 1-based
// position among data rows, header excluded.
type Record struct {
	Row    int
	Fields map[string]string
}

// Get returns the trimmed value of a column, or "" when absent
func (r Record) Get(column string) string {
	return strings.TrimSpace(r.Fields[column])
}

// ReadFile reads records from an .xlsx or .csv file
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Read(f, filepath.Base(path))
}

// Read reads records from r, choosing the format from name's extension
func Read(r io.Reader, name string) ([]Record, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	case ".csv":
		return ReadCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q (use .xlsx or .csv)", ErrUnsupportedFile, name)
	}
}

// ReadXLSX reads the first sheet of a workbook. Cells are read raw so dates
// arrive as Excel serials and amounts without display formatting.
func ReadXLSX(r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return toRecords(rows)
}

// ReadCSV reads a comma-separated file with a header row
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return toRecords(rows)
}

func toRecords(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	index := headerIndex(rows[0])
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		fields := make(map[string]string, len(index))
		for col, pos := range index {
			if pos < len(row) {
				fields[col] = row[pos]
			}
		}
		records = append(records, Record{Row: i + 1, Fields: fields})
	}
	return records, nil
}

// headerIndex maps canonical column names to their positions. Unknown headers are ignored.
func headerIndex(header []string) map[string]int {
	known := make(map[string]string, len(RequiredColumns)+len(OptionalColumns))
	for _, col := range append(append([]string{}, RequiredColumns...), OptionalColumns...) {
		known[strings.ToLower(col)] = col
	}

	index := make(map[string]int, len(header))
	for pos, h := range header {
		col, ok := known[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := index[col]; !dup {
			index[col] = pos
		}
	}
	return index
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
