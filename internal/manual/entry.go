// Package manual builds records from directly typed field values. The output
// passes through the same validation and derivation as the extraction path,
// so both paths converge on identical record shape.
package manual

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/ArturoR1986/roof-report/internal/derive"
	"github.com/ArturoR1986/roof-report/internal/model"
	"github.com/ArturoR1986/roof-report/internal/schema"
)

// Entry mirrors the internal report with one multi-line blob per sequence
// field, one item per non-blank line. Severity and urgency are absent on
// purpose: they are always derived, never typed in.
type Entry struct {
	ServiceSummary     string `yaml:"service_summary" json:"service_summary"`
	RoofSystem         string `yaml:"roof_system" json:"roof_system"`
	PrimaryIssue       string `yaml:"primary_issue" json:"primary_issue"`
	Location           string `yaml:"location" json:"location"`
	ActiveLeakReported bool   `yaml:"active_leak_reported" json:"active_leak_reported"`
	Observations       string `yaml:"observations" json:"observations"`
	SiteConditions     string `yaml:"installation_site_conditions" json:"installation_site_conditions"`
	PotentialConcerns  string `yaml:"potential_concerns" json:"potential_concerns"`
	NextSteps          string `yaml:"recommended_next_steps" json:"recommended_next_steps"`
}

// LoadEntry reads a prepared entry form from a YAML file.
func LoadEntry(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, eris.Wrapf(err, "manual: read entry %s", path)
	}
	var e Entry
	if err := yaml.Unmarshal(data, &e); err != nil {
		return Entry{}, eris.Wrapf(err, "manual: parse entry %s", path)
	}
	return e, nil
}

// SplitEntryLines splits a blob into items, one per non-blank line, with
// leading bullet markers and surrounding whitespace stripped.
func SplitEntryLines(blob string) []string {
	lines := strings.Split(blob, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*•")
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// BuildRecord turns a typed entry into a validated record with derived
// severity, urgency, and customer narrative.
func BuildRecord(e Entry) (*model.Record, error) {
	internal := map[string]any{
		"service_summary":              e.ServiceSummary,
		"roof_system":                  e.RoofSystem,
		"primary_issue":                e.PrimaryIssue,
		"location":                     e.Location,
		"active_leak_reported":         e.ActiveLeakReported,
		"observations":                 SplitEntryLines(e.Observations),
		"installation_site_conditions": SplitEntryLines(e.SiteConditions),
		"potential_concerns":           SplitEntryLines(e.PotentialConcerns),
		"recommended_next_steps":       SplitEntryLines(e.NextSteps),
	}

	rec, err := schema.Validate(map[string]any{"internal_report": internal})
	if err != nil {
		return nil, eris.Wrap(err, "manual: validate entry")
	}

	sourceText := strings.Join([]string{e.ServiceSummary, e.Observations, e.PotentialConcerns}, "\n")
	derive.ApplySeverityUrgency(rec, sourceText)
	rec.Customer = derive.CustomerNarrative(rec.Internal)

	// Final pass so manual and extracted records normalize identically.
	normalized, err := schema.ValidateRecord(rec)
	if err != nil {
		return nil, eris.Wrap(err, "manual: normalize record")
	}
	return normalized, nil
}
