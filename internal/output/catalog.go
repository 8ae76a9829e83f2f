package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/taxdesk/tds-calculator/internal/calculation"
)

// CatalogFormats are the formats FormatCatalog accepts
var CatalogFormats = []string{"console", "csv", "json"}

var catalogColumns = []string{"Section", "Description", "Threshold", "Company Rate", "Individual Rate", "No PAN Rate", "Special Notes"}

// FormatCatalog renders the section reference table
func FormatCatalog(sections []calculation.SectionInfo, format string) ([]byte, error) {
	switch NormalizeFormatName(format) {
	case "console", "summary":
		return catalogConsole(sections)
	case "csv", "detailed-csv":
		return catalogCSV(sections)
	case "json":
		return json.MarshalIndent(sections, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q. Try one of: %s", ErrUnsupportedFormat, format, strings.Join(CatalogFormats, ", "))
	}
}

// FormatSection renders one section with its slabs, conditions and threshold types
func FormatSection(info calculation.SectionInfo) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s: %s\n", info.Code, info.Description)
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	fmt.Fprintf(&buf, "Threshold:        %s\n", info.Threshold)
	fmt.Fprintf(&buf, "Company rate:     %s\n", info.CompanyRate)
	fmt.Fprintf(&buf, "Individual rate:  %s\n", info.IndividualRate)
	fmt.Fprintf(&buf, "No PAN rate:      %s\n", info.NoPANRate)
	writeList(&buf, "Threshold types", info.ThresholdTypes)
	writeList(&buf, "Slabs", info.Slabs)
	writeList(&buf, "Conditions", info.Conditions)
	writeList(&buf, "Notes", info.Notes)
	return buf.Bytes()
}

func writeList(buf *bytes.Buffer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(buf, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(buf, "  • %s\n", item)
	}
}

func catalogConsole(sections []calculation.SectionInfo) ([]byte, error) {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(catalogColumns, "\t"))
	for _, s := range sections {
		fmt.Fprintln(tw, strings.Join(catalogRow(s), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, "\n%d sections\n", len(sections))
	return buf.Bytes(), nil
}

func catalogCSV(sections []calculation.SectionInfo) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(catalogColumns); err != nil {
		return nil, err
	}
	for _, s := range sections {
		if err := w.Write(catalogRow(s)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func catalogRow(s calculation.SectionInfo) []string {
	notes := s.NotesText()
	if notes == "" {
		notes = "-"
	}
	return []string{s.Code, s.Description, s.Threshold, s.CompanyRate, s.IndividualRate, s.NoPANRate, notes}
}
