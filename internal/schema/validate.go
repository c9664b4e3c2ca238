package schema

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ArturoR1986/roof-report/internal/model"
)

// ErrNotObject marks input whose top-level value is not a JSON object. It is
// the only condition Validate rejects.
var ErrNotObject = eris.New("schema: top-level value is not a JSON object")

// Validate coerces a decoded JSON value into a fully-populated Record.
// Unknown keys are ignored, missing and malformed fields take their defaults,
// and sequence fields are always non-nil. Validate is idempotent: feeding a
// validated record's serialized form back in yields an identical record.
func Validate(input any) (*model.Record, error) {
	obj, ok := input.(map[string]any)
	if !ok {
		return nil, eris.Wrap(ErrNotObject, fmt.Sprintf("got %T", input))
	}

	internalSrc, nested := sectionMap(obj, "internal_report")
	if !nested {
		// Single-report era payloads carry the internal fields at top level.
		internalSrc = obj
	}
	customerSrc, _ := sectionMap(obj, "customer_report")

	internal := coerceSection(internalSrc, internalFields)
	customer := coerceSection(customerSrc, customerFields)

	urgency := internal["urgency"].(string)
	if customer["priority"].(string) == "" {
		customer["priority"] = urgency
	}

	rec := &model.Record{
		Internal: model.InternalReport{
			ServiceSummary:       internal["service_summary"].(string),
			RoofSystem:           internal["roof_system"].(string),
			PrimaryIssue:         internal["primary_issue"].(string),
			Location:             internal["location"].(string),
			ActiveLeakReported:   internal["active_leak_reported"].(bool),
			Observations:         internal["observations"].([]string),
			SiteConditions:       internal["installation_site_conditions"].([]string),
			PotentialConcerns:    internal["potential_concerns"].([]string),
			RecommendedNextSteps: internal["recommended_next_steps"].([]string),
			Severity:             model.Severity(internal["severity"].(string)),
			Urgency:              model.Urgency(urgency),
		},
		Customer: model.CustomerReport{
			WhatWeFound:          customer["what_we_found"].(string),
			WhyThisMatters:       customer["why_this_matters"].(string),
			WhatThisCouldLeadTo:  customer["what_this_could_lead_to"].([]string),
			RecommendedNextSteps: customer["recommended_next_steps"].([]string),
			Priority:             model.Urgency(customer["priority"].(string)),
		},
		ClarifyingQuestions: asLines(obj["clarifying_questions"]),
	}
	return rec, nil
}

// ValidateRecord re-normalizes an already-typed record, e.g. one loaded from
// disk and edited by hand.
func ValidateRecord(rec *model.Record) (*model.Record, error) {
	return Validate(recordToMap(rec))
}

func recordToMap(rec *model.Record) map[string]any {
	i := rec.Internal
	c := rec.Customer
	return map[string]any{
		"internal_report": map[string]any{
			"service_summary":              i.ServiceSummary,
			"roof_system":                  i.RoofSystem,
			"primary_issue":                i.PrimaryIssue,
			"location":                     i.Location,
			"active_leak_reported":         i.ActiveLeakReported,
			"observations":                 toAnySlice(i.Observations),
			"installation_site_conditions": toAnySlice(i.SiteConditions),
			"potential_concerns":           toAnySlice(i.PotentialConcerns),
			"recommended_next_steps":       toAnySlice(i.RecommendedNextSteps),
			"severity":                     string(i.Severity),
			"urgency":                      string(i.Urgency),
		},
		"customer_report": map[string]any{
			"what_we_found":           c.WhatWeFound,
			"why_this_matters":        c.WhyThisMatters,
			"what_this_could_lead_to": toAnySlice(c.WhatThisCouldLeadTo),
			"recommended_next_steps":  toAnySlice(c.RecommendedNextSteps),
			"priority":                string(c.Priority),
		},
		"clarifying_questions": toAnySlice(rec.ClarifyingQuestions),
	}
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// sectionMap extracts a nested object by key. The second return reports
// whether the key was present at all; a present-but-malformed section coerces
// to empty rather than falling back to the top level.
func sectionMap(obj map[string]any, key string) (map[string]any, bool) {
	v, present := obj[key]
	if !present {
		return map[string]any{}, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}, true
	}
	return m, true
}

// coerceSection applies the descriptor table to one section, producing a map
// of canonical key to coerced value (string, bool, or []string).
func coerceSection(section map[string]any, specs []FieldSpec) map[string]any {
	out := make(map[string]any, len(specs))
	for _, spec := range specs {
		v := fieldValue(section, spec.Key)
		switch spec.Kind {
		case FieldString:
			out[spec.Key] = asString(v, spec.Default)
		case FieldBool:
			out[spec.Key] = asBool(v)
		case FieldEnum:
			out[spec.Key] = asEnum(v, spec.Allowed, spec.Default)
		case FieldLines:
			out[spec.Key] = asLines(v)
		}
	}
	return out
}

func fieldValue(section map[string]any, key string) any {
	if v, ok := section[key]; ok {
		return v
	}
	for _, alias := range legacyAliases[key] {
		if v, ok := section[alias]; ok {
			return v
		}
	}
	return nil
}

// asString coerces a scalar to trimmed text. Null, blank, and composite
// values take the default; non-string scalars are formatted.
func asString(v any, def string) string {
	switch s := v.(type) {
	case nil:
		return def
	case string:
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return def
		}
		return trimmed
	case bool, float64, int, int64:
		return fmt.Sprint(s)
	default:
		return def
	}
}

// asBool coerces a value to a strict boolean. Only an explicit true or an
// affirmative string reads as true; everything else, including unrecognized
// strings and numbers, is false. A leak is never inferred from a malformed
// flag.
func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "yes", "y":
			return true
		}
	}
	return false
}

// asLines coerces a value to a sequence of non-blank strings. A scalar
// becomes a one-element sequence; blanks are dropped; null and composite
// elements are dropped. The result is never nil.
func asLines(v any) []string {
	switch items := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s := asString(item, ""); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		if s := asString(v, ""); s != "" {
			return []string{s}
		}
		return []string{}
	}
}

// asEnum repairs case variants by title-casing, then falls back to the
// default when the value is outside the allowed set.
func asEnum(v any, allowed []string, def string) string {
	s := asString(v, def)
	if s == def {
		return def
	}
	titled := cases.Title(language.English).String(strings.ToLower(s))
	for _, a := range allowed {
		if titled == a {
			return a
		}
	}
	return def
}
