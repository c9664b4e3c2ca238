package model

import "strings"

// IssueCategory is the closed classification of a primary_issue value. The
// raw field stays freeform prose; every rule table keys off the category so
// unrecognized wording degrades to Unclassified instead of branching on raw
// strings.
type IssueCategory string

const (
	IssueActiveLeak   IssueCategory = "active_leak"
	IssuePonding      IssueCategory = "ponding"
	IssueOpenSeam     IssueCategory = "open_seam"
	IssueFlashing     IssueCategory = "flashing"
	IssuePuncture     IssueCategory = "puncture"
	IssueCloggedDrain IssueCategory = "clogged_drain"
	IssueDebris       IssueCategory = "debris"
	IssueMoisture     IssueCategory = "moisture"
	IssueAdhesion     IssueCategory = "adhesion"
	IssueBlistering   IssueCategory = "blistering"
	IssueMechanical   IssueCategory = "mechanical"
	IssueUnclassified IssueCategory = "unclassified"
)

// issueMatchers maps substring markers to categories. Order matters: earlier
// entries win when a freeform value mentions more than one condition, and the
// order follows the PrimaryIssues vocabulary.
var issueMatchers = []struct {
	markers  []string
	category IssueCategory
}{
	{[]string{"leak"}, IssueActiveLeak},
	{[]string{"pond", "standing water"}, IssuePonding},
	{[]string{"seam", "lap"}, IssueOpenSeam},
	{[]string{"flash"}, IssueFlashing},
	{[]string{"punctur", "tear"}, IssuePuncture},
	{[]string{"drain", "scupper", "clog"}, IssueCloggedDrain},
	{[]string{"debris"}, IssueDebris},
	{[]string{"blister", "ridg"}, IssueBlistering},
	{[]string{"mechanical"}, IssueMechanical},
	{[]string{"moisture", "wet insulation"}, IssueMoisture},
	{[]string{"adhesion", "install"}, IssueAdhesion},
}

// ClassifyIssue maps a freeform primary_issue value to its category by
// case-insensitive substring matching.
func ClassifyIssue(raw string) IssueCategory {
	issue := strings.ToLower(strings.TrimSpace(raw))
	if issue == "" || strings.EqualFold(raw, NotSpecified) {
		return IssueUnclassified
	}
	for _, m := range issueMatchers {
		for _, marker := range m.markers {
			if strings.Contains(issue, marker) {
				return m.category
			}
		}
	}
	return IssueUnclassified
}
