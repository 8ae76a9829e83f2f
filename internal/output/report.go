package output

import (
	"github.com/taxdesk/tds-calculator/internal/domain"
)

// GenerateReport formats report with the named formatter and writes it to a
// timestamped file in dir. "all" writes the console, detailed CSV and xlsx
// reports. The written paths are returned.
func GenerateReport(report *domain.BatchReport, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, f := range []Formatter{ConsoleFormatter{}, CSVDetailedExporter{}, XLSXFormatter{}} {
			path, err := WriteFormatted(f, report, dir)
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, UnsupportedFormatError(format)
	}
	path, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// Render formats report with the named formatter without touching disk
func Render(report *domain.BatchReport, format string) ([]byte, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, UnsupportedFormatError(format)
	}
	return f.Format(report)
}
