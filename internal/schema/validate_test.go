package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArturoR1986/roof-report/internal/model"
)

func TestValidateEmptyObject(t *testing.T) {
	rec, err := Validate(map[string]any{})
	require.NoError(t, err)

	assert.Equal(t, model.NotSpecified, rec.Internal.ServiceSummary)
	assert.Equal(t, model.NotSpecified, rec.Internal.RoofSystem)
	assert.Equal(t, model.NotSpecified, rec.Internal.PrimaryIssue)
	assert.Equal(t, model.NotSpecified, rec.Internal.Location)
	assert.False(t, rec.Internal.ActiveLeakReported)
	assert.Equal(t, []string{}, rec.Internal.Observations)
	assert.Equal(t, []string{}, rec.Internal.SiteConditions)
	assert.Equal(t, []string{}, rec.Internal.PotentialConcerns)
	assert.Equal(t, []string{}, rec.Internal.RecommendedNextSteps)
	assert.Equal(t, model.SeverityModerate, rec.Internal.Severity)
	assert.Equal(t, model.UrgencySoon, rec.Internal.Urgency)

	assert.Equal(t, model.NotSpecified, rec.Customer.WhatWeFound)
	assert.Equal(t, model.NotSpecified, rec.Customer.WhyThisMatters)
	assert.Equal(t, []string{}, rec.Customer.WhatThisCouldLeadTo)
	assert.Equal(t, []string{}, rec.Customer.RecommendedNextSteps)
	assert.Equal(t, model.UrgencySoon, rec.Customer.Priority)
	assert.Equal(t, []string{}, rec.ClarifyingQuestions)
}

func TestValidateRejectsNonObject(t *testing.T) {
	for _, input := range []any{nil, "a string", float64(42), []any{"a", "b"}, true} {
		_, err := Validate(input)
		require.Error(t, err, "input %v", input)
		assert.True(t, errors.Is(err, ErrNotObject))
	}
}

func TestValidateBooleanCoercion(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{true, true},
		{false, false},
		{"yes", true},
		{"Y", true},
		{"TRUE", true},
		{"no", false},
		{"n", false},
		{"false", false},
		{"absolutely", false},
		{float64(42), false},
		{float64(1), false},
		{nil, false},
		{[]any{true}, false},
	}

	for _, tt := range tests {
		rec, err := Validate(map[string]any{
			"internal_report": map[string]any{"active_leak_reported": tt.value},
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, rec.Internal.ActiveLeakReported, "value %v", tt.value)
	}
}

func TestValidateEnumCoercion(t *testing.T) {
	tests := []struct {
		severity     any
		urgency      any
		wantSeverity model.Severity
		wantUrgency  model.Urgency
	}{
		{"high", "immediate", model.SeverityHigh, model.UrgencyImmediate},
		{"LOW", "ROUTINE", model.SeverityLow, model.UrgencyRoutine},
		{"Moderate", "Soon", model.SeverityModerate, model.UrgencySoon},
		{"urgent", "critical", model.SeverityModerate, model.UrgencySoon},
		{nil, nil, model.SeverityModerate, model.UrgencySoon},
		{float64(3), float64(1), model.SeverityModerate, model.UrgencySoon},
	}

	for _, tt := range tests {
		rec, err := Validate(map[string]any{
			"internal_report": map[string]any{"severity": tt.severity, "urgency": tt.urgency},
		})
		require.NoError(t, err)
		assert.Equal(t, tt.wantSeverity, rec.Internal.Severity, "severity %v", tt.severity)
		assert.Equal(t, tt.wantUrgency, rec.Internal.Urgency, "urgency %v", tt.urgency)
	}
}

func TestValidateSequenceCoercion(t *testing.T) {
	rec, err := Validate(map[string]any{
		"internal_report": map[string]any{
			"observations":                 "single line",
			"installation_site_conditions": []any{"", "  ", "gravel ballast", nil, float64(7)},
			"potential_concerns":           []any{""},
			"recommended_next_steps":       nil,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"single line"}, rec.Internal.Observations)
	assert.Equal(t, []string{"gravel ballast", "7"}, rec.Internal.SiteConditions)
	assert.Equal(t, []string{}, rec.Internal.PotentialConcerns)
	assert.Equal(t, []string{}, rec.Internal.RecommendedNextSteps)
}

func TestValidateWrongTypedValues(t *testing.T) {
	rec, err := Validate(map[string]any{
		"internal_report": map[string]any{
			"observations":         "one line",
			"active_leak_reported": "yes",
			"service_summary":      float64(12),
			"roof_system":          map[string]any{"name": "TPO"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"one line"}, rec.Internal.Observations)
	assert.True(t, rec.Internal.ActiveLeakReported)
	assert.Equal(t, "12", rec.Internal.ServiceSummary)
	assert.Equal(t, model.NotSpecified, rec.Internal.RoofSystem)
}

func TestValidatePriorityFallsBackToUrgency(t *testing.T) {
	rec, err := Validate(map[string]any{
		"internal_report": map[string]any{"urgency": "Immediate"},
		"customer_report": map[string]any{},
	})
	require.NoError(t, err)
	assert.Equal(t, model.UrgencyImmediate, rec.Customer.Priority)

	rec, err = Validate(map[string]any{
		"internal_report": map[string]any{"urgency": "Immediate"},
		"customer_report": map[string]any{"priority": "whenever"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.UrgencyImmediate, rec.Customer.Priority)

	rec, err = Validate(map[string]any{
		"internal_report": map[string]any{"urgency": "Immediate"},
		"customer_report": map[string]any{"priority": "routine"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.UrgencyRoutine, rec.Customer.Priority)
}

func TestValidateIgnoresUnknownKeys(t *testing.T) {
	rec, err := Validate(map[string]any{
		"internal_report": map[string]any{
			"primary_issue": "Debris",
			"crew_size":     float64(4),
			"weather":       "overcast",
		},
		"confidence": 0.93,
	})
	require.NoError(t, err)
	assert.Equal(t, "Debris", rec.Internal.PrimaryIssue)
}

func TestValidateFlatLegacyPayload(t *testing.T) {
	// Single-report era output: no internal_report wrapper, old key names.
	rec, err := Validate(map[string]any{
		"job_summary":             "Swept debris from roof field",
		"primary_issue":           "Debris",
		"constraints_or_unknowns": []any{"Could not access northeast corner"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Swept debris from roof field", rec.Internal.ServiceSummary)
	assert.Equal(t, "Debris", rec.Internal.PrimaryIssue)
	assert.Equal(t, []string{"Could not access northeast corner"}, rec.Internal.PotentialConcerns)
}

func TestValidateMalformedSectionCoercesToDefaults(t *testing.T) {
	rec, err := Validate(map[string]any{
		"internal_report": "not an object",
		"customer_report": float64(9),
	})
	require.NoError(t, err)
	assert.Equal(t, model.NotSpecified, rec.Internal.ServiceSummary)
	assert.Equal(t, model.NotSpecified, rec.Customer.WhatWeFound)
}

func TestValidateIdempotent(t *testing.T) {
	first, err := Validate(map[string]any{
		"internal_report": map[string]any{
			"service_summary":      "Inspected ponding at drain",
			"primary_issue":        "ponding",
			"severity":             "high",
			"urgency":              "immediate",
			"active_leak_reported": "yes",
			"observations":         []any{"water line around drain"},
		},
		"clarifying_questions": []any{"Which drain?"},
	})
	require.NoError(t, err)

	second, err := ValidateRecord(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestValidateRoundTripThroughJSON(t *testing.T) {
	rec, err := Validate(map[string]any{
		"internal_report": map[string]any{
			"service_summary": "Resealed pitch pan at gas line",
			"roof_system":     "EPDM",
			"primary_issue":   "Flashing concern",
			"severity":        "High",
			"urgency":         "Soon",
			"observations":    []any{"sealant shrinkage", "exposed fastener"},
		},
		"customer_report": map[string]any{
			"what_we_found": "A flashing detail needs attention.",
			"priority":      "Soon",
		},
	})
	require.NoError(t, err)

	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	again, err := Validate(decoded)
	require.NoError(t, err)
	assert.Equal(t, rec, again)
}

func TestValidateNilTypedMap(t *testing.T) {
	var m map[string]any
	rec, err := Validate(m)
	require.NoError(t, err)
	assert.Equal(t, model.NotSpecified, rec.Internal.PrimaryIssue)
}
