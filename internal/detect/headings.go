package detect

import (
	"fmt"
	"strings"

	"a11yscan/internal/merge"
	"a11yscan/internal/model"
)

// SingleH1 flags documents with zero or multiple <h1> elements. The rule
// only fires on full pages: a component fragment legitimately has no h1,
// and flagging it would punish every partial.
type SingleH1 struct{}

// NewSingleH1 creates the rule.
func NewSingleH1() *SingleH1 {
	return &SingleH1{}
}

func (d *SingleH1) ID() string   { return "single-h1" }
func (d *SingleH1) WCAG() string { return "1.3.1" }

func (d *SingleH1) Check(doc *merge.DocumentModel) []Finding {
	if !doc.IsFullPage() {
		return nil
	}

	var h1s []Finding
	for _, e := range doc.GetAllElements() {
		if strings.EqualFold(e.TagName, "h1") {
			h1s = append(h1s, Finding{
				Rule:     d.ID(),
				WCAG:     d.WCAG(),
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("page has %d <h1> elements, want exactly 1", len(h1s)+1),
				Location: e.Location,
			})
		}
	}

	switch len(h1s) {
	case 1:
		return nil
	case 0:
		loc := model.UnknownLocation()
		if root := doc.DOM().Get(doc.CanonicalRoot()); root != nil {
			loc = root.Location
		} else if all := doc.GetAllElements(); len(all) > 0 {
			loc = all[0].Location
		}
		return []Finding{{
			Rule:     d.ID(),
			WCAG:     d.WCAG(),
			Severity: SeverityWarning,
			Message:  "page has no <h1> element",
			Location: loc,
		}}
	default:
		// Report every h1 past the first with the final count.
		extra := h1s[1:]
		for i := range extra {
			extra[i].Message = fmt.Sprintf("page has %d <h1> elements, want exactly 1", len(h1s))
		}
		return extra
	}
}
