package model

import "strings"

// ElementReference is an unresolved, possibly-ambiguous pointer from an
// action node to the DOM element(s) it targets. At least one field is
// populated. Binding is an opaque framework-specific name (a template ref,
// a JSX element handle) treated purely as an equality key; it is never
// parsed.
type ElementReference struct {
	Selector string `json:"selector,omitempty"`
	ID       string `json:"id,omitempty"`
	Binding  string `json:"binding,omitempty"`
}

// IsZero reports whether no field is populated. Extractors should never
// emit a zero reference; a zero reference resolves to nothing.
func (r ElementReference) IsZero() bool {
	return r.Selector == "" && r.ID == "" && r.Binding == ""
}

func (r ElementReference) String() string {
	var parts []string
	if r.ID != "" {
		parts = append(parts, "#"+r.ID)
	}
	if r.Selector != "" {
		parts = append(parts, r.Selector)
	}
	if r.Binding != "" {
		parts = append(parts, "binding:"+r.Binding)
	}
	if len(parts) == 0 {
		return "<empty>"
	}
	return strings.Join(parts, "|")
}
