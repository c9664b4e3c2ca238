package derive

import (
	"strings"
	"unicode"

	"github.com/ArturoR1986/roof-report/internal/model"
)

// CustomerConsistency cross-checks the customer report against the internal
// one: it returns every customer sentence containing a word that appears
// neither in the internal report nor in the narrative templates. A non-empty
// result means the customer text carries content the technician never wrote
// down; callers surface it as a warning and leave the record untouched.
//
// Records built by CustomerNarrative always pass. The check matters for the
// extraction path, where the customer section comes back from the model.
func CustomerConsistency(rec *model.Record) []string {
	known := map[string]bool{}
	addTokens(known, rec.Internal.ServiceSummary)
	addTokens(known, rec.Internal.RoofSystem)
	addTokens(known, rec.Internal.PrimaryIssue)
	addTokens(known, rec.Internal.Location)
	for _, lines := range [][]string{
		rec.Internal.Observations,
		rec.Internal.SiteConditions,
		rec.Internal.PotentialConcerns,
		rec.Internal.RecommendedNextSteps,
		rec.ClarifyingQuestions,
	} {
		for _, line := range lines {
			addTokens(known, line)
		}
	}
	for _, template := range []string{
		foundTemplate, foundUnspecified, mattersTemplate, mattersUnspecified,
		leakPriorityStep, model.NotSpecified,
	} {
		addTokens(known, template)
	}
	for _, step := range fallbackSteps {
		addTokens(known, step)
	}

	var flagged []string
	texts := []string{rec.Customer.WhatWeFound, rec.Customer.WhyThisMatters}
	texts = append(texts, rec.Customer.WhatThisCouldLeadTo...)
	texts = append(texts, rec.Customer.RecommendedNextSteps...)
	for _, text := range texts {
		for _, sentence := range splitSentences(text) {
			if hasUnknownToken(sentence, known) {
				flagged = append(flagged, sentence)
			}
		}
	}
	return flagged
}

func addTokens(set map[string]bool, text string) {
	for _, tok := range tokenize(text) {
		set[tok] = true
	}
}

func hasUnknownToken(sentence string, known map[string]bool) bool {
	for _, tok := range tokenize(sentence) {
		if !known[tok] {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range strings.Split(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
