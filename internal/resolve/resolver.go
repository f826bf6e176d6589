// Package resolve turns an ElementReference into the concrete DOM elements
// it targets. Resolution is deterministic: for a fixed candidate set the
// returned elements are in document order, so downstream "first match"
// consumers are reproducible.
package resolve

import (
	"strings"

	"a11yscan/internal/logging"
	"a11yscan/internal/model"
)

// Resolve matches ref against candidates and returns every matching
// element, preserving the candidates' order. Candidates are expected in
// document order (pre-order forest traversal).
//
// Strategy priority, first matching rule wins:
//  1. ref.ID against the id attribute (an id short-circuits everything else)
//  2. "#id" selector, same as above with the stripped id
//  3. ".class" selector against whitespace-split class tokens
//  4. "[name]" / [name="value"] attribute selector
//  5. bare selector as a case-insensitive tag name
//  6. only if 1-5 yielded nothing and ref.Binding is set: opaque equality
//     against the element's binding metadata
//
// Zero matches is a valid outcome (the action stays unjoined). Multiple
// matches is valid (a class selector over a list).
func Resolve(ref model.ElementReference, candidates []*model.DOMElement) []*model.DOMElement {
	if ref.IsZero() {
		return nil
	}

	var out []*model.DOMElement
	switch {
	case ref.ID != "":
		out = filter(candidates, func(e *model.DOMElement) bool {
			v, ok := e.Attr("id")
			return ok && v == ref.ID
		})
	case ref.Selector != "":
		out = bySelector(ref.Selector, candidates)
	}

	if len(out) == 0 && ref.Binding != "" {
		out = filter(candidates, func(e *model.DOMElement) bool {
			return e.Binding() == ref.Binding
		})
	}

	logging.ResolveDebug("resolve %s: %d match(es) over %d candidates", ref, len(out), len(candidates))
	return out
}

func bySelector(selector string, candidates []*model.DOMElement) []*model.DOMElement {
	switch {
	case strings.HasPrefix(selector, "#"):
		id := strings.TrimPrefix(selector, "#")
		return filter(candidates, func(e *model.DOMElement) bool {
			v, ok := e.Attr("id")
			return ok && v == id
		})
	case strings.HasPrefix(selector, "."):
		class := strings.TrimPrefix(selector, ".")
		return filter(candidates, func(e *model.DOMElement) bool {
			return e.HasClass(class)
		})
	case strings.HasPrefix(selector, "[") && strings.HasSuffix(selector, "]"):
		name, value, exact := parseAttrSelector(selector)
		if name == "" {
			return nil
		}
		return filter(candidates, func(e *model.DOMElement) bool {
			v, ok := e.Attr(name)
			if !ok {
				return false
			}
			return !exact || v == value
		})
	default:
		return filter(candidates, func(e *model.DOMElement) bool {
			return strings.EqualFold(e.TagName, selector)
		})
	}
}

// parseAttrSelector handles the [name] and [name="value"] shapes. Single
// quotes and unquoted values are tolerated; anything more elaborate (~=,
// |=, combinators) is not an attribute selector this resolver understands.
func parseAttrSelector(selector string) (name, value string, exact bool) {
	inner := strings.TrimSuffix(strings.TrimPrefix(selector, "["), "]")
	if inner == "" {
		return "", "", false
	}
	eq := strings.Index(inner, "=")
	if eq < 0 {
		return inner, "", false
	}
	name = inner[:eq]
	value = inner[eq+1:]
	value = strings.Trim(value, `"'`)
	return name, value, true
}

func filter(candidates []*model.DOMElement, pred func(*model.DOMElement) bool) []*model.DOMElement {
	var out []*model.DOMElement
	for _, e := range candidates {
		if e == nil || !e.IsElement() {
			continue
		}
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}
