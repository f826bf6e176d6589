package merge

import (
	"strings"

	"a11yscan/internal/model"
)

// CSSRule is one resolved style declaration for an element. Cascade
// resolution is out of scope here; rules are populated by an external
// collaborator when one is available, otherwise the list stays empty.
type CSSRule struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// ElementContext is the derived, per-element view detectors consume. It is
// a pure function of the merged state: recomputed per query from the
// immutable join index, never mutated in place on the element.
type ElementContext struct {
	Element            *model.DOMElement
	JSHandlers         []model.ActionNode
	CSSRules           []CSSRule
	Interactive        bool
	HasClickHandler    bool
	HasKeyboardHandler bool

	// Degraded mirrors the document model's degraded flag so a detector
	// holding only the context still sees the reduced-accuracy signal.
	Degraded bool
}

// DocumentContext carries cheap structural completeness signals derived in
// a single pass over the merged forest.
type DocumentContext struct {
	HasHTMLTag     bool `json:"hasHtmlTag"`
	HasHeadTag     bool `json:"hasHeadTag"`
	HasBodyTag     bool `json:"hasBodyTag"`
	HasExternalCSS bool `json:"hasExternalCss"`
}

func computeDocumentContext(elements []*model.DOMElement) DocumentContext {
	var ctx DocumentContext
	for _, e := range elements {
		switch strings.ToLower(e.TagName) {
		case "html":
			ctx.HasHTMLTag = true
		case "head":
			ctx.HasHeadTag = true
		case "body":
			ctx.HasBodyTag = true
		case "style":
			ctx.HasExternalCSS = true
		case "link":
			rel, _ := e.Attr("rel")
			if strings.Contains(strings.ToLower(rel), "stylesheet") {
				ctx.HasExternalCSS = true
			}
		}
		// Framework component-scoped styles (Vue/Svelte <style> blocks)
		// cannot be resolved statically and count as external CSS.
		if e.Meta(model.MetaScopedStyle) == "true" {
			ctx.HasExternalCSS = true
		}
	}
	return ctx
}

// nativelyInteractiveTags are element types interactive without any script.
var nativelyInteractiveTags = map[string]bool{
	"a":        true,
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"option":   true,
	"summary":  true,
	"details":  true,
}

// ariaInteractiveRoles are role attribute values that make an element
// interactive for assistive technology.
var ariaInteractiveRoles = map[string]bool{
	"button":     true,
	"link":       true,
	"checkbox":   true,
	"radio":      true,
	"tab":        true,
	"menuitem":   true,
	"switch":     true,
	"textbox":    true,
	"searchbox":  true,
	"combobox":   true,
	"listbox":    true,
	"option":     true,
	"slider":     true,
	"spinbutton": true,
}

// NativelyInteractive reports whether the tag is interactive without
// script (and therefore keyboard-operable out of the box).
func NativelyInteractive(tag string) bool {
	return nativelyInteractiveTags[strings.ToLower(tag)]
}

// HasAriaInteractiveRole reports whether the element declares an
// interactive ARIA role.
func HasAriaInteractiveRole(e *model.DOMElement) bool {
	role, ok := e.Attr("role")
	if !ok {
		return false
	}
	return ariaInteractiveRoles[strings.ToLower(strings.TrimSpace(role))]
}
