package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/taxdesk/tds-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string      { return "html" }
func (h HTMLFormatter) Extension() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"date":    FormatDate,
	"datePtr": FormatDatePtr,
	"yesno":   boolToString,
	"statusClass": func(r domain.CalculationResult) string {
		switch {
		case r.IsError():
			return "error"
		case r.IsLate:
			return "late"
		default:
			return strings.ToLower(strings.ReplaceAll(r.Status, " ", "-"))
		}
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.BatchReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.BatchReport
		Summary  []SummaryRow
		Sections []SectionTotal
		Notes    []string
	}{report, SummaryRows(report.Summary), AnalyzeSections(report), GenerateNotes(report)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
