package output

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResultConsole(t *testing.T) {
	results := buildTestReport(t).Results

	out, err := FormatResult(results[1], "console")
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "TDS CALCULATION")
	assert.Contains(t, content, "John Doe")
	assert.Contains(t, content, "Individual/HUF")
	assert.Contains(t, content, "07-Jun-2025 (7th of the following month)")
	assert.Contains(t, content, "Months Late:       2")
	assert.Contains(t, content, "Interest:          ₹300")

	out, err = FormatResult(results[3], "text")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Status:            Invalid Section Code: 999Z")
	assert.NotContains(t, string(out), "Due Date")
}

func TestFormatResultJSON(t *testing.T) {
	r := buildTestReport(t).Results[0]
	out, err := FormatResult(r, "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "194C", decoded["section"])
	assert.Equal(t, "3000.00", decoded["tds_amount"])
}

func TestFormatResultUnsupported(t *testing.T) {
	_, err := FormatResult(buildTestReport(t).Results[0], "xlsx")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}
