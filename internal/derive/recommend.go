package derive

import "github.com/ArturoR1986/roof-report/internal/model"

// fallbackSteps is the conservative plan used when the notes carried no next
// steps. Always exactly these three, in this order.
var fallbackSteps = []string{
	"Perform closer inspection of the reported area and surrounding details.",
	"Complete localized repairs as required to restore watertightness.",
	"Reinspect after the next significant rainfall event.",
}

// leakPriorityStep is prepended whenever an active leak is flagged.
const leakPriorityStep = "Address the reported leak area first; apply temporary protection to limit interior water entry until permanent repairs are made."

// Recommendations returns the record's next steps verbatim when present,
// otherwise the fixed fallback plan. A flagged leak prepends the
// leak-priority step to whichever list applies. Pure: the record is never
// mutated, so repeated rendering cannot stack steps.
func Recommendations(rec *model.Record) []string {
	steps := rec.Internal.RecommendedNextSteps
	if len(steps) == 0 {
		steps = fallbackSteps
	}

	out := make([]string, 0, len(steps)+1)
	if rec.Internal.ActiveLeakReported {
		out = append(out, leakPriorityStep)
	}
	return append(out, steps...)
}
