package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

const rule = "================================================================================="

// ConsoleFormatter renders the full results table, summary and section breakdown.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	var buf bytes.Buffer
	writeHeader(&buf, report)

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Row\tDeductee\tPAN\tCategory\tSection\tAmount\tRate\tTDS\tDue Date\tInterest\tStatus")
	for _, r := range report.Results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Row,
			r.DeducteeName,
			r.DisplayPAN(),
			r.Category.ShortName(),
			r.Section,
			FormatCurrency(r.Amount),
			r.RateLabel,
			FormatCurrency(r.TDSAmount),
			FormatDatePtr(r.DueDate),
			FormatCurrency(r.Interest),
			r.Status,
		)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}
	fmt.Fprintln(&buf)

	writeSummary(&buf, report.Summary)

	if sections := AnalyzeSections(report); len(sections) > 0 {
		fmt.Fprintln(&buf, "BY SECTION")
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		tw = tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Section\tRows\tAmount\tTDS\tInterest")
		for _, s := range sections {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", s.Section, s.Rows, FormatCurrency(s.Amount), FormatCurrency(s.TDS), FormatCurrency(s.Interest))
		}
		if err := tw.Flush(); err != nil {
			return nil, err
		}
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "NOTES:")
	for _, n := range GenerateNotes(report) {
		fmt.Fprintf(&buf, "• %s\n", n)
	}
	return buf.Bytes(), nil
}

// SummaryFormatter provides a concise console summary via the formatter interface.
type SummaryFormatter struct{}

func (s SummaryFormatter) Name() string      { return "summary" }
func (s SummaryFormatter) Extension() string { return "txt" }

func (s SummaryFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	var buf bytes.Buffer
	writeHeader(&buf, report)
	writeSummary(&buf, report.Summary)
	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, report *domain.BatchReport) {
	fmt.Fprintln(buf, rule)
	fmt.Fprintln(buf, "TDS CALCULATION REPORT")
	fmt.Fprintln(buf, rule)
	if report.Source != "" {
		fmt.Fprintf(buf, "Source:     %s\n", report.Source)
	}
	if report.BatchID != "" {
		fmt.Fprintf(buf, "Batch:      %s\n", report.BatchID)
	}
	if report.RegistryVersion != "" {
		fmt.Fprintf(buf, "Rules:      %s\n", report.RegistryVersion)
	}
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(buf, "Generated:  %s\n", report.GeneratedAt.Format("02-Jan-2006 15:04:05 MST"))
	}
	fmt.Fprintln(buf)
}

func writeSummary(buf *bytes.Buffer, s domain.BatchSummary) {
	fmt.Fprintln(buf, "SUMMARY")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	for _, row := range SummaryRows(s) {
		fmt.Fprintf(buf, "%-20s %s\n", row.Label+":", row.Value)
	}
	fmt.Fprintln(buf)
}
