package detect

import (
	"strings"

	"a11yscan/internal/merge"
)

// ImgAlt flags images without an alt attribute. An empty alt is valid
// (decorative image); a missing one is not. role="presentation" also
// exempts the image.
type ImgAlt struct{}

// NewImgAlt creates the rule.
func NewImgAlt() *ImgAlt {
	return &ImgAlt{}
}

func (d *ImgAlt) ID() string   { return "img-alt" }
func (d *ImgAlt) WCAG() string { return "1.1.1" }

func (d *ImgAlt) Check(doc *merge.DocumentModel) []Finding {
	var findings []Finding
	for _, e := range doc.GetAllElements() {
		if !strings.EqualFold(e.TagName, "img") {
			continue
		}
		if _, ok := e.Attr("alt"); ok {
			continue
		}
		role := strings.ToLower(e.AttrOr("role", ""))
		if role == "presentation" || role == "none" {
			continue
		}
		findings = append(findings, Finding{
			Rule:     d.ID(),
			WCAG:     d.WCAG(),
			Severity: SeverityError,
			Message:  "<img> is missing an alt attribute",
			Location: e.Location,
			Degraded: doc.Degraded(),
		})
	}
	return findings
}
