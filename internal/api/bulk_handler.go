package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxdesk/tds-calculator/internal/bulk"
	"github.com/taxdesk/tds-calculator/internal/output"
)

// TemplateFilename is the download name of the bulk upload template
const TemplateFilename = "tds_bulk_template.xlsx"

var contentTypes = map[string]string{
	"txt":  "text/plain; charset=utf-8",
	"csv":  "text/csv; charset=utf-8",
	"html": "text/html; charset=utf-8",
	"json": "application/json",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// BulkHandler processes spreadsheet uploads.
type BulkHandler struct {
	processor *bulk.Processor
	maxBytes  int64
}

// NewBulkHandler creates a new BulkHandler. maxBytes <= 0 disables the upload limit.
func NewBulkHandler(processor *bulk.Processor, maxBytes int64) *BulkHandler {
	return &BulkHandler{processor: processor, maxBytes: maxBytes}
}

// Upload handles POST /api/v1/bulk
// The multipart "file" field carries an .xlsx or .csv sheet. The optional
// "format" query or form field picks a report format; without it the batch
// report is returned as JSON in the standard envelope.
func (h *BulkHandler) Upload(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	format := c.Query("format")
	if format == "" {
		format = c.PostForm("format")
	}
	var formatter output.Formatter
	if format != "" && output.NormalizeFormatName(format) != "json" {
		formatter = output.GetFormatterByName(format)
		if formatter == nil {
			HandleError(c, output.UnsupportedFormatError(format))
			return
		}
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			HandleError(c, err)
			return
		}
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	report, err := h.processor.ProcessReader(c.Request.Context(), file, header.Filename)
	if err != nil {
		HandleError(c, err)
		return
	}

	if formatter == nil {
		RespondOK(c, report)
		return
	}
	body, err := formatter.Format(report)
	if err != nil {
		HandleError(c, err)
		return
	}
	filename := fmt.Sprintf("tds_report_%s.%s", report.GeneratedAt.Format("20060102_150405"), formatter.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType(formatter.Extension()), body)
}

// Template handles GET /api/v1/bulk/template
func (h *BulkHandler) Template(c *gin.Context) {
	var buf bytes.Buffer
	if err := bulk.WriteTemplate(&buf); err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", TemplateFilename))
	c.Data(http.StatusOK, contentType("xlsx"), buf.Bytes())
}

func contentType(ext string) string {
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
