// Package report renders validated records into fixed-section text reports.
// Section order never varies and no section is conditionally omitted; empty
// sequences render a placeholder line so a reader can tell "nothing noted"
// from "section missing".
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ArturoR1986/roof-report/internal/derive"
	"github.com/ArturoR1986/roof-report/internal/model"
)

// RenderInternal produces the technician-facing report.
func RenderInternal(rec *model.Record) string {
	internal := rec.Internal

	var b strings.Builder
	b.WriteString("# Internal Service Report\n")

	writeTextSection(&b, "Service Summary", internal.ServiceSummary)
	writeTextSection(&b, "Roof System", internal.RoofSystem)
	writeTextSection(&b, "Primary Issue", internal.PrimaryIssue)
	writeTextSection(&b, "Location", internal.Location)
	writeTextSection(&b, "Active Leak Reported", yesNo(internal.ActiveLeakReported))
	writeListSection(&b, "Observations", internal.Observations)
	writeListSection(&b, "Installation/Site Conditions", internal.SiteConditions)
	writeListSection(&b, "Potential Concerns", internal.PotentialConcerns)
	writeListSection(&b, "Recommended Next Steps", derive.Recommendations(rec))
	writeTextSection(&b, "Severity", bold(string(internal.Severity)))
	writeTextSection(&b, "Urgency", bold(string(internal.Urgency)))

	return b.String()
}

// RenderCustomer produces the customer-facing report.
func RenderCustomer(rec *model.Record) string {
	customer := rec.Customer

	var b strings.Builder
	b.WriteString("# Customer Report\n")

	writeTextSection(&b, "What We Found", customer.WhatWeFound)
	writeTextSection(&b, "Why This Matters", customer.WhyThisMatters)
	writeListSection(&b, "What This Could Lead To", customer.WhatThisCouldLeadTo)
	writeListSection(&b, "Recommended Next Steps", customer.RecommendedNextSteps)
	writeTextSection(&b, "Priority", bold(string(customer.Priority)))

	return b.String()
}

// RenderFieldSummary produces the condensed numbered summary handed to crews:
// observed issue, probable cause, recommendations, severity, urgency.
func RenderFieldSummary(rec *model.Record) string {
	internal := rec.Internal

	var b strings.Builder
	b.WriteString("### 1. Issue Observed\n")
	if internal.ServiceSummary != model.NotSpecified {
		b.WriteString(internal.ServiceSummary + "\n")
	} else {
		fmt.Fprintf(&b, "Primary issue: %s.\n", internal.PrimaryIssue)
	}
	if internal.RoofSystem != model.NotSpecified {
		fmt.Fprintf(&b, "Roof system: %s.\n", internal.RoofSystem)
	}
	if internal.Location != model.NotSpecified {
		fmt.Fprintf(&b, "Location: %s.\n", internal.Location)
	}
	if len(internal.Observations) > 0 {
		b.WriteString("\nObservations:\n")
		writeBullets(&b, internal.Observations)
	}
	if len(internal.PotentialConcerns) > 0 {
		b.WriteString("\nUnknown / needs confirmation:\n")
		writeBullets(&b, internal.PotentialConcerns)
	}

	b.WriteString("\n### 2. Probable Cause\n")
	b.WriteString(derive.ProbableCause(rec) + "\n")

	b.WriteString("\n### 3. Recommendations\n")
	writeBullets(&b, derive.Recommendations(rec))

	fmt.Fprintf(&b, "\n### 4. Severity\n%s\n", bold(string(internal.Severity)))
	fmt.Fprintf(&b, "\n### 5. Urgency\n%s\n", bold(string(internal.Urgency)))

	return b.String()
}

// Footer returns the shared report trailer: generation timestamp and the
// professional-confirmation note.
func Footer(t time.Time) string {
	return fmt.Sprintf(
		"Generated on: %s\nNote: This tool supports documentation. Final assessment should be confirmed by a qualified roofing professional.\n",
		t.Format("2006-01-02 15:04"),
	)
}

func writeTextSection(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "\n## %s\n%s\n", title, body)
}

func writeListSection(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n## %s\n", title)
	if len(items) == 0 {
		b.WriteString(model.NotSpecified + "\n")
		return
	}
	writeBullets(b, items)
}

func writeBullets(b *strings.Builder, items []string) {
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func bold(s string) string {
	return "**" + s + "**"
}
