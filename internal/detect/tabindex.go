package detect

import (
	"fmt"
	"strconv"

	"a11yscan/internal/merge"
)

// PositiveTabindex flags tabindex values greater than zero, which hijack
// the natural tab order. tabindex="0" and "-1" are legitimate.
type PositiveTabindex struct{}

// NewPositiveTabindex creates the rule.
func NewPositiveTabindex() *PositiveTabindex {
	return &PositiveTabindex{}
}

func (d *PositiveTabindex) ID() string   { return "positive-tabindex" }
func (d *PositiveTabindex) WCAG() string { return "2.4.3" }

func (d *PositiveTabindex) Check(doc *merge.DocumentModel) []Finding {
	var findings []Finding
	for _, e := range doc.GetAllElements() {
		raw, ok := e.Attr("tabindex")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			continue
		}
		findings = append(findings, Finding{
			Rule:     d.ID(),
			WCAG:     d.WCAG(),
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("tabindex=%d overrides the natural tab order", n),
			Location: e.Location,
			Degraded: doc.Degraded(),
		})
	}
	return findings
}
