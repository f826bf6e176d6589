package model

import "strings"

// NodeKind distinguishes structural element nodes from text nodes.
type NodeKind string

const (
	KindElement NodeKind = "element"
	KindText    NodeKind = "text"
)

// NodeID is an index into a Forest's arena. Parent/child links are stored
// as NodeIDs rather than pointers so a forest can be serialized, diffed, or
// grafted into another forest without cyclic-reference concerns.
type NodeID int

// NoNode is the null NodeID (a root element's parent).
const NoNode NodeID = -1

// Attr is a single attribute. Attributes are kept as an ordered slice, not
// a map, because source order matters for provenance and reporting.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Metadata carries framework-specific annotations produced by the
// per-dialect extractors (directive names, binding kind, scoped-style
// marks). The merge engine treats it as opaque pass-through except for the
// well-known keys below.
type Metadata map[string]string

// Well-known metadata keys. Everything else is pass-through.
const (
	// MetaBinding is the opaque framework binding name an
	// ElementReference.Binding resolves against.
	MetaBinding = "binding"

	// MetaScopedStyle marks an element as covered by a framework
	// component-scoped style block (Vue/Svelte <style>). Scoped styles are
	// opaque to the analyzer and treated as external CSS.
	MetaScopedStyle = "scopedStyle"

	// MetaIssuePrefix prefixes keys flagged by upstream extractors or
	// detectors; GetElementsWithIssues filters on its presence.
	MetaIssuePrefix = "issue."
)

// DOMElement is one node of a DOM forest: either a structural element or a
// text node. Parent and Children are arena indices; AppendChild is the only
// operation that writes them, so the two views cannot diverge.
type DOMElement struct {
	ID          NodeID         `json:"id"`
	Kind        NodeKind       `json:"kind"`
	TagName     string         `json:"tagName,omitempty"`
	Attributes  []Attr         `json:"attributes,omitempty"`
	TextContent string         `json:"textContent,omitempty"`
	Children    []NodeID       `json:"children,omitempty"`
	Parent      NodeID         `json:"parent"`
	Location    SourceLocation `json:"location"`
	Metadata    Metadata       `json:"metadata,omitempty"`
}

// Attr returns the value of the named attribute (case-insensitive name
// match) and whether it is present.
func (e *DOMElement) Attr(name string) (string, bool) {
	for _, a := range e.Attributes {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value or a default when absent.
func (e *DOMElement) AttrOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// HasClass reports whether the class attribute, split on whitespace,
// contains the given token.
func (e *DOMElement) HasClass(token string) bool {
	class, ok := e.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(class) {
		if c == token {
			return true
		}
	}
	return false
}

// SetMeta sets a metadata key, allocating the map on first use.
func (e *DOMElement) SetMeta(key, value string) {
	if e.Metadata == nil {
		e.Metadata = make(Metadata)
	}
	e.Metadata[key] = value
}

// Meta returns a metadata value, or "" when absent.
func (e *DOMElement) Meta(key string) string {
	return e.Metadata[key]
}

// Binding returns the element's framework binding name, if any.
func (e *DOMElement) Binding() string {
	return e.Metadata[MetaBinding]
}

// IsElement reports whether the node is a structural element.
func (e *DOMElement) IsElement() bool {
	return e.Kind == KindElement
}

// Forest holds one or more element trees in a single arena. Per-file
// extraction produces a forest per file; the merge engine grafts them into
// one merged forest.
type Forest struct {
	arena []DOMElement
	roots []NodeID
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{}
}

// NewElement allocates a structural element in the arena. The element is
// not attached anywhere until AddRoot or AppendChild is called.
func (f *Forest) NewElement(tag string, loc SourceLocation) NodeID {
	id := NodeID(len(f.arena))
	f.arena = append(f.arena, DOMElement{
		ID:       id,
		Kind:     KindElement,
		TagName:  tag,
		Parent:   NoNode,
		Location: loc.Normalize(),
	})
	return id
}

// NewText allocates a text node in the arena.
func (f *Forest) NewText(text string, loc SourceLocation) NodeID {
	id := NodeID(len(f.arena))
	f.arena = append(f.arena, DOMElement{
		ID:          id,
		Kind:        KindText,
		TextContent: text,
		Parent:      NoNode,
		Location:    loc.Normalize(),
	})
	return id
}

// Get returns the node for an id. The pointer stays valid until the next
// allocation, so callers must not hold it across NewElement/NewText calls.
func (f *Forest) Get(id NodeID) *DOMElement {
	if id < 0 || int(id) >= len(f.arena) {
		return nil
	}
	return &f.arena[id]
}

// AddRoot registers a top-level tree root.
func (f *Forest) AddRoot(id NodeID) {
	f.roots = append(f.roots, id)
}

// Roots returns the top-level roots in insertion order.
func (f *Forest) Roots() []NodeID {
	return f.roots
}

// Len returns the number of allocated nodes.
func (f *Forest) Len() int {
	return len(f.arena)
}

// AppendChild attaches child under parent. It is the single mutation point
// for both the parent back-reference and the children list, which keeps the
// two views consistent by construction. A node already attached elsewhere
// is first detached.
func (f *Forest) AppendChild(parent, child NodeID) {
	p := f.Get(parent)
	c := f.Get(child)
	if p == nil || c == nil || parent == child {
		return
	}
	if c.Parent != NoNode {
		f.detach(child)
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
}

func (f *Forest) detach(id NodeID) {
	c := f.Get(id)
	p := f.Get(c.Parent)
	if p != nil {
		for i, ch := range p.Children {
			if ch == id {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	c.Parent = NoNode
}

// Walk visits every node in document order: pre-order traversal of each
// root, roots in insertion order. Returning false from fn stops the walk.
func (f *Forest) Walk(fn func(*DOMElement) bool) {
	for _, root := range f.roots {
		if !f.walkFrom(root, fn) {
			return
		}
	}
}

func (f *Forest) walkFrom(id NodeID, fn func(*DOMElement) bool) bool {
	n := f.Get(id)
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, ch := range n.Children {
		if !f.walkFrom(ch, fn) {
			return false
		}
	}
	return true
}

// Elements returns all structural elements in document order.
func (f *Forest) Elements() []*DOMElement {
	var out []*DOMElement
	f.Walk(func(n *DOMElement) bool {
		if n.IsElement() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Graft copies every node and root of src into f, preserving structure and
// document order, and returns the src→dst id remapping. Locations are
// normalized on the way in so a malformed extractor location can never
// reach the merged forest.
func (f *Forest) Graft(src *Forest) map[NodeID]NodeID {
	remap := make(map[NodeID]NodeID, len(src.arena))
	for i := range src.arena {
		n := &src.arena[i]
		id := NodeID(len(f.arena))
		cp := *n
		cp.ID = id
		cp.Parent = NoNode
		cp.Children = nil
		cp.Location = cp.Location.Normalize()
		if n.Metadata != nil {
			cp.Metadata = make(Metadata, len(n.Metadata))
			for k, v := range n.Metadata {
				cp.Metadata[k] = v
			}
		}
		if n.Attributes != nil {
			cp.Attributes = append([]Attr(nil), n.Attributes...)
		}
		f.arena = append(f.arena, cp)
		remap[n.ID] = id
	}
	for i := range src.arena {
		n := &src.arena[i]
		for _, ch := range n.Children {
			f.AppendChild(remap[n.ID], remap[ch])
		}
	}
	for _, r := range src.roots {
		f.AddRoot(remap[r])
	}
	return remap
}
