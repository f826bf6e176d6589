package detect

import (
	"fmt"
	"strings"

	"a11yscan/internal/merge"
	"a11yscan/internal/model"
)

// ControlLabel flags form controls without an accessible name: no
// aria-label, no aria-labelledby, no <label for=...> pointing at the
// control, and not wrapped in a <label>.
type ControlLabel struct{}

// NewControlLabel creates the rule.
func NewControlLabel() *ControlLabel {
	return &ControlLabel{}
}

func (d *ControlLabel) ID() string   { return "control-label" }
func (d *ControlLabel) WCAG() string { return "3.3.2" }

// labelableTags are form controls that need an accessible name.
var labelableTags = map[string]bool{
	"input":    true,
	"select":   true,
	"textarea": true,
}

// unlabeledInputTypes excludes input types that carry their own text or
// are invisible.
var unlabeledInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
}

func (d *ControlLabel) Check(doc *merge.DocumentModel) []Finding {
	// One pass to collect every id a <label for=...> points at.
	labeledIDs := make(map[string]bool)
	for _, e := range doc.GetAllElements() {
		if strings.EqualFold(e.TagName, "label") {
			if target, ok := e.Attr("for"); ok && target != "" {
				labeledIDs[target] = true
			}
		}
	}

	var findings []Finding
	for _, e := range doc.GetAllElements() {
		if !labelableTags[strings.ToLower(e.TagName)] {
			continue
		}
		if strings.EqualFold(e.TagName, "input") {
			if unlabeledInputTypes[strings.ToLower(e.AttrOr("type", "text"))] {
				continue
			}
		}
		if hasAccessibleName(doc, e, labeledIDs) {
			continue
		}
		findings = append(findings, Finding{
			Rule:     d.ID(),
			WCAG:     d.WCAG(),
			Severity: SeverityError,
			Message:  fmt.Sprintf("<%s> has no associated label or aria name", e.TagName),
			Location: e.Location,
			Degraded: doc.Degraded(),
		})
	}
	return findings
}

func hasAccessibleName(doc *merge.DocumentModel, e *model.DOMElement, labeledIDs map[string]bool) bool {
	if e.AttrOr("aria-label", "") != "" || e.AttrOr("aria-labelledby", "") != "" {
		return true
	}
	if e.AttrOr("title", "") != "" {
		return true
	}
	if id, ok := e.Attr("id"); ok && labeledIDs[id] {
		return true
	}
	// Wrapped in a <label> ancestor.
	forest := doc.DOM()
	for p := e.Parent; p != model.NoNode; {
		parent := forest.Get(p)
		if parent == nil {
			break
		}
		if strings.EqualFold(parent.TagName, "label") {
			return true
		}
		p = parent.Parent
	}
	return false
}
