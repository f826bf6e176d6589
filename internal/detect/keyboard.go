package detect

import (
	"fmt"

	"a11yscan/internal/merge"
	"a11yscan/internal/model"
)

// ClickNoKeyboard flags elements with a click handler but no keyboard
// handler. Natively interactive elements are exempt: browsers synthesize
// click from Enter/Space for them. This is the rule the cross-file join
// exists for; a keydown listener attached in another file must suppress
// the finding.
type ClickNoKeyboard struct{}

// NewClickNoKeyboard creates the rule.
func NewClickNoKeyboard() *ClickNoKeyboard {
	return &ClickNoKeyboard{}
}

func (d *ClickNoKeyboard) ID() string   { return "click-no-keyboard" }
func (d *ClickNoKeyboard) WCAG() string { return "2.1.1" }

func (d *ClickNoKeyboard) Check(doc *merge.DocumentModel) []Finding {
	var findings []Finding

	for _, e := range doc.GetAllElements() {
		ctx := doc.GetElementContext(e)
		if !ctx.HasClickHandler || ctx.HasKeyboardHandler {
			continue
		}
		if merge.NativelyInteractive(e.TagName) {
			continue
		}
		findings = append(findings, Finding{
			Rule:     d.ID(),
			WCAG:     d.WCAG(),
			Severity: SeverityError,
			Message:  fmt.Sprintf("<%s> has a click handler but no keyboard handler", e.TagName),
			Location: e.Location,
			Degraded: ctx.Degraded,
		})
	}

	// Degraded mode: no DOM to anchor on, so the rule falls back to the
	// per-file action models and every finding is flagged. References are
	// file-scoped here, so models are checked one at a time.
	if doc.Degraded() {
		for _, m := range doc.ActionModels() {
			findings = append(findings, d.checkDegraded(m)...)
		}
	}
	return findings
}

func (d *ClickNoKeyboard) checkDegraded(m *model.ActionModel) []Finding {
	hasKeyboard := make(map[model.ElementReference]bool)
	for _, a := range m.All() {
		if a.IsKeyboardHandler() {
			hasKeyboard[a.Element] = true
		}
	}

	var findings []Finding
	for _, a := range m.All() {
		if !a.IsClickHandler() || hasKeyboard[a.Element] {
			continue
		}
		findings = append(findings, Finding{
			Rule:     d.ID(),
			WCAG:     d.WCAG(),
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("click handler on %s has no keyboard handler in this file", a.Element.String()),
			Location: a.Location,
			Degraded: true,
		})
	}
	return findings
}
