// Package derive holds the rule-based derivation engine: severity/urgency
// inference, probable cause composition, recommendation fallback, and the
// customer-facing narrative. Everything here is a pure function over the
// validated record plus the source text; there is no model call and no
// randomness, so identical input always yields identical output.
package derive

import (
	"strings"

	"github.com/ArturoR1986/roof-report/internal/model"
)

// highCategories escalate to (High, Soon): conditions with a direct path to
// water entry.
var highCategories = map[model.IssueCategory]bool{
	model.IssuePuncture:     true,
	model.IssueOpenSeam:     true,
	model.IssueFlashing:     true,
	model.IssueCloggedDrain: true,
}

// lowCategories settle at (Low, Routine): housekeeping and monitoring items.
var lowCategories = map[model.IssueCategory]bool{
	model.IssueDebris:     true,
	model.IssueBlistering: true,
	model.IssueMechanical: true,
	model.IssueMoisture:   true,
}

// InferSeverityUrgency grades a condition from the technician's own words,
// the primary issue, and the leak flag. Leak evidence dominates everything:
// the flag or the word "leak" anywhere in the notes forces (High, Immediate).
// Otherwise the issue category picks the bucket, and anything unrecognized
// lands in the middle at (Moderate, Soon).
func InferSeverityUrgency(notes, issue string, activeLeak bool) (model.Severity, model.Urgency) {
	if activeLeak || strings.Contains(strings.ToLower(notes), "leak") {
		return model.SeverityHigh, model.UrgencyImmediate
	}

	switch category := model.ClassifyIssue(issue); {
	case highCategories[category]:
		return model.SeverityHigh, model.UrgencySoon
	case lowCategories[category]:
		return model.SeverityLow, model.UrgencyRoutine
	default:
		return model.SeverityModerate, model.UrgencySoon
	}
}

// ApplySeverityUrgency grades the record from sourceText (the raw note for
// extracted records, the typed field text for manual entry) and writes the
// result into it. The rule engine is the authority on ingest; extracted
// grades are advisory. Customer priority tracks the derived urgency.
func ApplySeverityUrgency(rec *model.Record, sourceText string) {
	sev, urg := InferSeverityUrgency(sourceText, rec.Internal.PrimaryIssue, rec.Internal.ActiveLeakReported)
	rec.Internal.Severity = sev
	rec.Internal.Urgency = urg
	rec.Customer.Priority = urg
}
