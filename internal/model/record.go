package model

// NotSpecified is the canonical placeholder for any string field the source
// notes did not pin down. Validation coerces null, absent, and blank values
// to it so downstream consumers never branch on missing data.
const NotSpecified = "Not specified"

// Severity grades how serious a documented condition is.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityModerate Severity = "Moderate"
	SeverityHigh     Severity = "High"
)

// Urgency grades how quickly a documented condition should be acted on.
type Urgency string

const (
	UrgencyRoutine   Urgency = "Routine"
	UrgencySoon      Urgency = "Soon"
	UrgencyImmediate Urgency = "Immediate"
)

// Severities and Urgencies list the closed value sets in rank order.
var (
	Severities = []string{string(SeverityLow), string(SeverityModerate), string(SeverityHigh)}
	Urgencies  = []string{string(UrgencyRoutine), string(UrgencySoon), string(UrgencyImmediate)}
)

// RoofSystems is the advisory vocabulary for the roof_system field. Extracted
// and manually entered values are not constrained to it; it seeds prompts and
// entry forms.
var RoofSystems = []string{
	"TPO",
	"EPDM",
	"PVC",
	"Modified bitumen",
	"Built-up (BUR)",
	"Metal",
	"Shingle",
	NotSpecified,
}

// PrimaryIssues is the advisory vocabulary for the primary_issue field.
var PrimaryIssues = []string{
	"Active leak",
	"Ponding",
	"Open seam/lap",
	"Flashing concern",
	"Puncture/tear",
	"Clogged drain/scupper",
	"Debris",
	"Blistering/ridging",
	"Mechanical damage",
	"Moisture concern",
	"Adhesion/install concern",
	NotSpecified,
}

// InternalReport is the technician-facing half of a service record. Every
// field is populated after validation; string fields fall back to
// NotSpecified and sequences to empty (never nil).
type InternalReport struct {
	ServiceSummary       string   `json:"service_summary"`
	RoofSystem           string   `json:"roof_system"`
	PrimaryIssue         string   `json:"primary_issue"`
	Location             string   `json:"location"`
	ActiveLeakReported   bool     `json:"active_leak_reported"`
	Observations         []string `json:"observations"`
	SiteConditions       []string `json:"installation_site_conditions"`
	PotentialConcerns    []string `json:"potential_concerns"`
	RecommendedNextSteps []string `json:"recommended_next_steps"`
	Severity             Severity `json:"severity"`
	Urgency              Urgency  `json:"urgency"`
}

// CustomerReport is the customer-facing half. It carries no facts beyond what
// the internal report holds; the derivation engine composes it from fixed
// templates and verbatim copies.
type CustomerReport struct {
	WhatWeFound          string   `json:"what_we_found"`
	WhyThisMatters       string   `json:"why_this_matters"`
	WhatThisCouldLeadTo  []string `json:"what_this_could_lead_to"`
	RecommendedNextSteps []string `json:"recommended_next_steps"`
	Priority             Urgency  `json:"priority"`
}

// Record is the normalized service record produced by either input path.
type Record struct {
	Internal            InternalReport `json:"internal_report"`
	Customer            CustomerReport `json:"customer_report"`
	ClarifyingQuestions []string       `json:"clarifying_questions"`
}

// HasCustomerContent reports whether the customer report carries anything
// beyond validation defaults. Used by the extraction path to decide whether
// the narrative needs to be rebuilt from the internal report.
func (r *Record) HasCustomerContent() bool {
	c := r.Customer
	if c.WhatWeFound != NotSpecified || c.WhyThisMatters != NotSpecified {
		return true
	}
	return len(c.WhatThisCouldLeadTo) > 0 || len(c.RecommendedNextSteps) > 0
}
