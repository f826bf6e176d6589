// Package detect runs accessibility rules against a merged document model.
// Each detector is a pure query over the model; the merge engine's join
// index is what lets rules reason about handlers declared in other files
// without producing cross-file false positives.
package detect

import (
	"sort"

	"a11yscan/internal/logging"
	"a11yscan/internal/merge"
	"a11yscan/internal/model"
)

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// rank orders severities for filtering, highest first.
var rank = map[Severity]int{
	SeverityError:   3,
	SeverityWarning: 2,
	SeverityInfo:    1,
}

// AtLeast reports whether s is at least as severe as min.
func (s Severity) AtLeast(min Severity) bool {
	return rank[s] >= rank[min]
}

// Finding is one rule violation at one source location.
type Finding struct {
	Rule     string               `json:"rule"`
	WCAG     string               `json:"wcag,omitempty"`
	Severity Severity             `json:"severity"`
	Message  string               `json:"message"`
	Location model.SourceLocation `json:"location"`

	// Degraded marks findings produced without a cross-file join, which
	// may be false positives.
	Degraded bool `json:"degraded,omitempty"`
}

// Detector is one accessibility rule.
type Detector interface {
	// ID returns the stable rule identifier ("click-no-keyboard").
	ID() string
	// WCAG returns the success criterion the rule maps to ("2.1.1").
	WCAG() string
	// Check runs the rule against the merged model.
	Check(doc *merge.DocumentModel) []Finding
}

// DefaultDetectors returns the built-in rule set.
func DefaultDetectors() []Detector {
	return []Detector{
		NewClickNoKeyboard(),
		NewImgAlt(),
		NewSingleH1(),
		NewPositiveTabindex(),
		NewControlLabel(),
		NewHTMLLang(),
	}
}

// Run executes the detectors and returns findings sorted by location then
// rule id, for stable output across runs.
func Run(doc *merge.DocumentModel, detectors []Detector) []Finding {
	var findings []Finding
	for _, d := range detectors {
		got := d.Check(doc)
		logging.DetectDebug("%s: %d findings", d.ID(), len(got))
		findings = append(findings, got...)
	}

	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		if a.Location.Column != b.Location.Column {
			return a.Location.Column < b.Location.Column
		}
		return a.Rule < b.Rule
	})

	logging.Detect("ran %d detectors: %d findings", len(detectors), len(findings))
	return findings
}

// Filter drops findings for disabled rules or below the minimum severity.
// Empty minSeverity keeps everything.
func Filter(findings []Finding, disabled []string, minSeverity Severity) []Finding {
	off := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		off[id] = true
	}
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if off[f.Rule] {
			continue
		}
		if minSeverity != "" && !f.Severity.AtLeast(minSeverity) {
			continue
		}
		out = append(out, f)
	}
	return out
}
