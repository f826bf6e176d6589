package detect

import (
	"strings"

	"a11yscan/internal/merge"
)

// HTMLLang flags an <html> element without a lang attribute. Fires only
// when an <html> tag is actually present; fragments are out of scope.
type HTMLLang struct{}

// NewHTMLLang creates the rule.
func NewHTMLLang() *HTMLLang {
	return &HTMLLang{}
}

func (d *HTMLLang) ID() string   { return "html-lang" }
func (d *HTMLLang) WCAG() string { return "3.1.1" }

func (d *HTMLLang) Check(doc *merge.DocumentModel) []Finding {
	var findings []Finding
	for _, e := range doc.GetAllElements() {
		if !strings.EqualFold(e.TagName, "html") {
			continue
		}
		if strings.TrimSpace(e.AttrOr("lang", "")) != "" {
			continue
		}
		findings = append(findings, Finding{
			Rule:     d.ID(),
			WCAG:     d.WCAG(),
			Severity: SeverityError,
			Message:  "<html> is missing a lang attribute",
			Location: e.Location,
		})
	}
	return findings
}
