// Package schema defines the normalized record shape and the total validator
// that coerces arbitrary JSON-like input into it. Validation never fails on
// content: wrong types, missing keys, and out-of-vocabulary values all coerce
// to documented defaults. The only rejected input is a top-level value that
// is not an object.
package schema

import "github.com/ArturoR1986/roof-report/internal/model"

// FieldKind selects the coercion applied to a field.
type FieldKind int

const (
	FieldString FieldKind = iota // scalar text, default NotSpecified
	FieldBool                    // strict boolean, never defaults to true
	FieldEnum                    // closed set with title-case repair
	FieldLines                   // sequence of non-blank strings
)

// FieldSpec describes one record field: its canonical key, coercion kind,
// default, and (for enums) the allowed set. The tables below are the single
// source of truth for the record shape.
type FieldSpec struct {
	Key     string
	Kind    FieldKind
	Default string
	Allowed []string
}

// internalFields describes the internal_report section.
var internalFields = []FieldSpec{
	{Key: "service_summary", Kind: FieldString, Default: model.NotSpecified},
	{Key: "roof_system", Kind: FieldString, Default: model.NotSpecified},
	{Key: "primary_issue", Kind: FieldString, Default: model.NotSpecified},
	{Key: "location", Kind: FieldString, Default: model.NotSpecified},
	{Key: "active_leak_reported", Kind: FieldBool},
	{Key: "observations", Kind: FieldLines},
	{Key: "installation_site_conditions", Kind: FieldLines},
	{Key: "potential_concerns", Kind: FieldLines},
	{Key: "recommended_next_steps", Kind: FieldLines},
	{Key: "severity", Kind: FieldEnum, Default: string(model.SeverityModerate), Allowed: model.Severities},
	{Key: "urgency", Kind: FieldEnum, Default: string(model.UrgencySoon), Allowed: model.Urgencies},
}

// customerFields describes the customer_report section. Priority's default is
// dynamic (the coerced internal urgency) and is resolved by Validate after
// the table-driven pass.
var customerFields = []FieldSpec{
	{Key: "what_we_found", Kind: FieldString, Default: model.NotSpecified},
	{Key: "why_this_matters", Kind: FieldString, Default: model.NotSpecified},
	{Key: "what_this_could_lead_to", Kind: FieldLines},
	{Key: "recommended_next_steps", Kind: FieldLines},
	{Key: "priority", Kind: FieldEnum, Allowed: model.Urgencies},
}

// legacyAliases maps canonical keys to the field names used by the
// single-report era. An alias is consulted only when the canonical key is
// absent from the payload.
var legacyAliases = map[string][]string{
	"service_summary":    {"job_summary"},
	"potential_concerns": {"constraints_or_unknowns"},
}
