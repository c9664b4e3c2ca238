package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validatePDF(t *testing.T, data []byte) *model.Context {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	require.NoError(t, err)
	return ctx
}

func TestPDF_ValidSinglePage(t *testing.T) {
	report := "# Internal Service Report\n\n## Severity\n**High**\n"
	data, err := PDF("Roof Service Report", report)
	require.NoError(t, err)

	ctx := validatePDF(t, data)
	assert.Equal(t, 1, ctx.PageCount)
}

func TestPDF_PaginatesLongReport(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		fmt.Fprintf(&sb, "observation line %d\n", i+1)
	}

	data, err := PDF("Long Report", sb.String())
	require.NoError(t, err)

	// title + blank + 121 report lines = 123 lines, 3 pages of 54.
	ctx := validatePDF(t, data)
	assert.Equal(t, 3, ctx.PageCount)
}

func TestPDF_EmptyReport(t *testing.T) {
	data, err := PDF("Empty", "")
	require.NoError(t, err)

	ctx := validatePDF(t, data)
	assert.Equal(t, 1, ctx.PageCount)
}

func TestPDF_EscapesDelimiters(t *testing.T) {
	data, err := PDF("T", `ponding (north side) approx 50\% of field`)
	require.NoError(t, err)

	validatePDF(t, data)
	assert.Contains(t, string(data), `\(north side\)`)
}

func TestPDF_StripsBoldMarkers(t *testing.T) {
	data, err := PDF("T", "**High**")
	require.NoError(t, err)

	validatePDF(t, data)
	assert.Contains(t, string(data), "(High) Tj")
	assert.NotContains(t, string(data), "**High**")
}

func TestPDFLines_Truncation(t *testing.T) {
	long := strings.Repeat("x", 300)
	lines := pdfLines("T", long)

	// lines[0] title, lines[1] blank, lines[2] the long line.
	require.Len(t, lines, 3)
	assert.Len(t, lines[2], pdfMaxLineChars)
}

func TestPaginateLines(t *testing.T) {
	lines := make([]string, 55)
	pages := paginateLines(lines, 54)
	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 54)
	assert.Len(t, pages[1], 1)

	assert.Len(t, paginateLines(nil, 54), 1)
}
