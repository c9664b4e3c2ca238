package derive

import (
	"fmt"
	"strings"

	"github.com/ArturoR1986/roof-report/internal/model"
)

// Narrative templates. The customer report is assembled from these plus
// verbatim copies of internal fields, and from nothing else; the consistency
// check in consistency.go tokenizes these same constants.
const (
	foundTemplate      = "During our service visit, our technician identified: %s."
	foundUnspecified   = "During our service visit, our technician documented the conditions observed for later review."
	mattersTemplate    = "The following site conditions were noted and can affect how the roof performs: %s."
	mattersUnspecified = "No specific site conditions were noted during this visit."
)

// CustomerNarrative derives the customer-facing report from the internal one.
// It is a structural copy: what-we-found and why-this-matters come from fixed
// templates filled with internal field values, the two sequences are copied
// verbatim, and priority mirrors the internal urgency. No step of this adds
// information the internal report does not already carry.
func CustomerNarrative(internal model.InternalReport) model.CustomerReport {
	found := foundUnspecified
	if internal.PrimaryIssue != model.NotSpecified {
		found = fmt.Sprintf(foundTemplate, internal.PrimaryIssue)
	}

	matters := mattersUnspecified
	if len(internal.SiteConditions) > 0 {
		matters = fmt.Sprintf(mattersTemplate, strings.Join(internal.SiteConditions, "; "))
	}

	return model.CustomerReport{
		WhatWeFound:          found,
		WhyThisMatters:       matters,
		WhatThisCouldLeadTo:  copyLines(internal.PotentialConcerns),
		RecommendedNextSteps: copyLines(internal.RecommendedNextSteps),
		Priority:             internal.Urgency,
	}
}

func copyLines(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}
