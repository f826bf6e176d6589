package merge

import (
	"strings"

	"a11yscan/internal/model"
)

// DocumentModel is the merged whole-document view detectors query. It is
// constructed once per analysis run and immutable afterwards: a new merge
// produces a new DocumentModel rather than mutating in place, which makes
// ElementContext purity trivial and the model safe to share across
// concurrent detector invocations without locking.
type DocumentModel struct {
	dom        *model.Forest // nil when no structural elements were supplied
	elements   []*model.DOMElement
	actions    []model.ActionNode
	models     []*model.ActionModel
	joined     map[model.NodeID][]int
	canonical  model.NodeID
	extraRoots []model.SourceLocation
	docCtx     DocumentContext
	fullPage   bool
	degraded   bool
}

// DOM returns the merged forest, or nil when no fragment carried structure.
func (m *DocumentModel) DOM() *model.Forest {
	return m.dom
}

// GetAllElements returns every structural element in document order.
func (m *DocumentModel) GetAllElements() []*model.DOMElement {
	return m.elements
}

// GetElementContext derives the per-element view from the join index.
// HasClickHandler/HasKeyboardHandler reflect every joined action regardless
// of which file produced the action or the element; that cross-file
// completeness is the reason the merge engine exists.
func (m *DocumentModel) GetElementContext(e *model.DOMElement) ElementContext {
	ctx := ElementContext{
		Element:  e,
		CSSRules: []CSSRule{},
		Degraded: m.degraded,
	}
	if e == nil {
		return ctx
	}
	for _, i := range m.joined[e.ID] {
		a := m.actions[i]
		ctx.JSHandlers = append(ctx.JSHandlers, a)
		if a.IsClickHandler() {
			ctx.HasClickHandler = true
		}
		if a.IsKeyboardHandler() {
			ctx.HasKeyboardHandler = true
		}
	}
	ctx.Interactive = NativelyInteractive(e.TagName) ||
		HasAriaInteractiveRole(e) ||
		len(ctx.JSHandlers) > 0
	return ctx
}

// GetInteractiveElements returns all elements whose context is interactive.
func (m *DocumentModel) GetInteractiveElements() []*model.DOMElement {
	var out []*model.DOMElement
	for _, e := range m.elements {
		if m.GetElementContext(e).Interactive {
			out = append(out, e)
		}
	}
	return out
}

// GetElementsWithIssues is a detector-facing convenience: elements carrying
// any flagged metadata. The merge engine itself never assigns issues.
func (m *DocumentModel) GetElementsWithIssues() []*model.DOMElement {
	var out []*model.DOMElement
	for _, e := range m.elements {
		for k := range e.Metadata {
			if strings.HasPrefix(k, model.MetaIssuePrefix) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// GetDocumentContext returns the structural completeness signals.
func (m *DocumentModel) GetDocumentContext() DocumentContext {
	return m.docCtx
}

// IsFullPage reports whether the merged content amounts to a page rather
// than a fragment: an <html> or <body> tag exists somewhere in the forest.
// It is independent of the caller-declared analysis scope, so detectors can
// widen their own scope on structural evidence.
func (m *DocumentModel) IsFullPage() bool {
	return m.fullPage
}

// Degraded reports single-file mode: action models were supplied but no DOM
// forest, so no cross-file join was possible. Detectors running against a
// degraded model can produce false positives (a handler may live in a file
// that was never supplied) and must surface that.
func (m *DocumentModel) Degraded() bool {
	return m.degraded
}

// SingleModel returns the lone action model in degraded single-file mode,
// exposing FindByEvent/FindBySelector/All directly; nil otherwise.
func (m *DocumentModel) SingleModel() *model.ActionModel {
	if m.degraded && len(m.models) == 1 {
		return m.models[0]
	}
	return nil
}

// ActionModels returns the per-file action models in arrival order.
func (m *DocumentModel) ActionModels() []*model.ActionModel {
	return m.models
}

// AllActions returns the flat, concatenated action list in arrival order.
func (m *DocumentModel) AllActions() []model.ActionNode {
	return m.actions
}

// CanonicalRoot returns the id of the canonical <html> root, or NoNode.
func (m *DocumentModel) CanonicalRoot() model.NodeID {
	return m.canonical
}

// ExtraRoots returns the locations of non-canonical <html> roots retained
// during the merge, in arrival order.
func (m *DocumentModel) ExtraRoots() []model.SourceLocation {
	return m.extraRoots
}

// JoinedPairs returns every (element, action index) pair in the join index,
// in document order. Intended for fact export and index-equality checks.
func (m *DocumentModel) JoinedPairs() []JoinedPair {
	var out []JoinedPair
	for _, e := range m.elements {
		for _, i := range m.joined[e.ID] {
			out = append(out, JoinedPair{Element: e, ActionIndex: i, Action: m.actions[i]})
		}
	}
	return out
}

// JoinedPair is one resolved (element, action) edge of the join index.
type JoinedPair struct {
	Element     *model.DOMElement
	ActionIndex int
	Action      model.ActionNode
}
