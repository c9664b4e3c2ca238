package derive

import (
	"strings"

	"github.com/ArturoR1986/roof-report/internal/model"
)

// Base probable-cause sentences by issue category. Only conditions with a
// well-understood mechanism get specific wording; everything else defers to
// on-site confirmation. None of these assert a verified cause.
var causeBase = map[model.IssueCategory]string{
	model.IssueActiveLeak: "Water entry is reported. The source may be near a roof detail or condition in the vicinity, but requires confirmation on-site.",
	model.IssuePonding:    "Ponding/standing water is indicated. This is commonly associated with drainage limitations, slope conditions, or obstructions, and should be confirmed by inspection.",
	model.IssueOpenSeam:   "An opening or weakness at seams/laps is indicated. Seam integrity issues can lead to water entry and should be verified and repaired per system requirements.",
	model.IssueFlashing:   "A flashing/detail concern is indicated. Movement, aging sealant, or termination issues can contribute to leakage risk and should be inspected.",
}

const causeFallback = "Cause is not specified in the notes and should be confirmed through closer inspection of the area and adjacent details."

// roofSystemClauses carries per-system sensitivity wording for the systems in
// the advisory vocabulary. The clause speaks to the system type in general,
// never to the specific roof.
var roofSystemClauses = map[string]string{
	"TPO":              "Roof system noted: TPO; heat-welded seams and penetration details are common sensitivity points on this system.",
	"EPDM":             "Roof system noted: EPDM; seam tape adhesion and shrinkage at terminations are common sensitivity points on this system.",
	"PVC":              "Roof system noted: PVC; heat-welded seams and membrane aging at details are common sensitivity points on this system.",
	"Modified bitumen": "Roof system noted: Modified bitumen; lap edges and surfacing wear are common sensitivity points on this system.",
	"Built-up (BUR)":   "Roof system noted: Built-up (BUR); blistering and flashing terminations are common sensitivity points on this system.",
	"Metal":            "Roof system noted: Metal; fastener backout and panel seam sealant are common sensitivity points on this system.",
	"Shingle":          "Roof system noted: Shingle; exposed fasteners and valley details are common sensitivity points on this system.",
}

// ProbableCause composes a conservative cause statement: a base sentence
// chosen by issue category, then a roof-system clause, then a location
// clause. Clauses for unspecified fields are skipped. The output contains
// only fixed template text plus the record's own field values.
func ProbableCause(rec *model.Record) string {
	internal := rec.Internal

	base, ok := causeBase[model.ClassifyIssue(internal.PrimaryIssue)]
	if !ok {
		base = causeFallback
	}

	parts := []string{base}
	if internal.RoofSystem != model.NotSpecified {
		parts = append(parts, roofSystemClause(internal.RoofSystem))
	}
	if internal.Location != model.NotSpecified {
		parts = append(parts, "Location noted: "+internal.Location+".")
	}
	return strings.Join(parts, " ")
}

func roofSystemClause(system string) string {
	for name, clause := range roofSystemClauses {
		if strings.EqualFold(name, system) {
			return clause
		}
	}
	return "Roof system noted: " + system + "."
}
