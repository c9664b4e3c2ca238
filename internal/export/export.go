// Package export converts rendered report text into deliverable formats:
// plain text, DOCX, and PDF per report, plus XLSX/CSV roll-ups for batch
// runs. Formats fail independently; callers log and continue with the rest.
package export

import (
	"strconv"
	"strings"

	"github.com/ArturoR1986/roof-report/internal/model"
)

// SummaryRow is one line of the manager roll-up produced by a batch run.
type SummaryRow struct {
	Source       string
	Summary      string
	RoofSystem   string
	PrimaryIssue string
	Location     string
	ActiveLeak   bool
	Severity     string
	Urgency      string
	Priority     string
	StepCount    int
	Status       string
}

// summaryColumns is the fixed roll-up column order shared by XLSX and CSV.
var summaryColumns = []string{
	"Source",
	"Summary",
	"Roof System",
	"Primary Issue",
	"Location",
	"Active Leak",
	"Severity",
	"Urgency",
	"Priority",
	"Next Steps",
	"Status",
}

// NewSummaryRow flattens a record into a roll-up row. rec may be nil for a
// failed normalization; status then carries the failure classification.
func NewSummaryRow(source string, rec *model.Record, status string) SummaryRow {
	row := SummaryRow{Source: source, Status: status}
	if rec == nil {
		return row
	}
	row.Summary = rec.Internal.ServiceSummary
	row.RoofSystem = rec.Internal.RoofSystem
	row.PrimaryIssue = rec.Internal.PrimaryIssue
	row.Location = rec.Internal.Location
	row.ActiveLeak = rec.Internal.ActiveLeakReported
	row.Severity = string(rec.Internal.Severity)
	row.Urgency = string(rec.Internal.Urgency)
	row.Priority = string(rec.Customer.Priority)
	row.StepCount = len(rec.Internal.RecommendedNextSteps)
	return row
}

// strings returns the row's cells in summaryColumns order.
func (r SummaryRow) strings() []string {
	leak := "No"
	if r.ActiveLeak {
		leak = "Yes"
	}
	return []string{
		r.Source,
		r.Summary,
		r.RoofSystem,
		r.PrimaryIssue,
		r.Location,
		leak,
		r.Severity,
		r.Urgency,
		r.Priority,
		strconv.Itoa(r.StepCount),
		r.Status,
	}
}

type lineKind int

const (
	lineBlank lineKind = iota
	lineHeading1
	lineHeading2
	lineHeading3
	lineBullet
	lineText
)

// classifyLine maps a rendered report line onto its structural role and
// returns the content with markers stripped.
func classifyLine(raw string) (lineKind, string) {
	line := strings.TrimRight(raw, " \t\r")
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return lineBlank, ""
	case strings.HasPrefix(trimmed, "### "):
		return lineHeading3, stripBold(strings.TrimPrefix(trimmed, "### "))
	case strings.HasPrefix(trimmed, "## "):
		return lineHeading2, stripBold(strings.TrimPrefix(trimmed, "## "))
	case strings.HasPrefix(trimmed, "# "):
		return lineHeading1, stripBold(strings.TrimPrefix(trimmed, "# "))
	case strings.HasPrefix(trimmed, "- "):
		return lineBullet, stripBold(strings.TrimPrefix(trimmed, "- "))
	default:
		return lineText, stripBold(trimmed)
	}
}

func stripBold(s string) string {
	return strings.ReplaceAll(s, "**", "")
}
