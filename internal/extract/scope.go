package extract

import "a11yscan/internal/model"

// Scope is a generic nested-scope symbol table mapping identifiers to the
// element references they were bound to (const btn =
// document.getElementById("go")). Lookups resolve innermost-first, so
// shadowing behaves like the source language's lexical scoping.
type Scope struct {
	parent  *Scope
	symbols map[string]model.ElementReference
}

// NewScope returns an empty root scope.
func NewScope() *Scope {
	return &Scope{symbols: make(map[string]model.ElementReference)}
}

// Push enters a nested scope and returns it.
func (s *Scope) Push() *Scope {
	return &Scope{parent: s, symbols: make(map[string]model.ElementReference)}
}

// Pop leaves the scope, returning the parent. Popping the root returns the
// root itself so a mismatched pop can't lose the table.
func (s *Scope) Pop() *Scope {
	if s.parent == nil {
		return s
	}
	return s.parent
}

// Declare binds a name in the current scope, shadowing outer bindings.
func (s *Scope) Declare(name string, ref model.ElementReference) {
	if name == "" || ref.IsZero() {
		return
	}
	s.symbols[name] = ref
}

// Lookup resolves a name through the scope chain, innermost first.
func (s *Scope) Lookup(name string) (model.ElementReference, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if ref, ok := cur.symbols[name]; ok {
			return ref, true
		}
	}
	return model.ElementReference{}, false
}

// Depth returns the nesting depth (root = 1).
func (s *Scope) Depth() int {
	d := 0
	for cur := s; cur != nil; cur = cur.parent {
		d++
	}
	return d
}
