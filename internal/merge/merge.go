// Package merge joins per-file DOM fragments and action models into one
// Document Model. This is the barrier step of the pipeline: extraction may
// run per-file in parallel, but the merge requires the complete,
// fully-materialized extract list, because id/selector resolution and
// multi-root detection are only deterministic over the full candidate set.
//
// Merge is total over its input domain: malformed locations are replaced
// with a sentinel, unresolvable references stay unjoined, and duplicate
// <html> roots are retained as structural facts. It never fails.
package merge

import (
	"strings"

	"a11yscan/internal/logging"
	"a11yscan/internal/model"
	"a11yscan/internal/resolve"
)

// Merge unions the extracts into a new, immutable DocumentModel.
//
// Forest rule: if more than one fragment declares a root <html> element,
// the first encountered (file arrival order) is canonical and the rest are
// kept as additional top-level forest members. Whether multiple <html>
// roots are an error is detector policy; the merge only refuses to drop
// data silently.
func Merge(extracts []model.FileExtract) *DocumentModel {
	timer := logging.StartTimer(logging.CategoryMerge, "merge")
	defer timer.Stop()

	m := &DocumentModel{canonical: model.NoNode}

	forest := model.NewForest()
	hasDOM := false
	for _, ex := range extracts {
		if ex.DOM == nil || ex.DOM.Len() == 0 {
			continue
		}
		hasDOM = true
		remap := forest.Graft(ex.DOM)
		for _, r := range ex.DOM.Roots() {
			n := ex.DOM.Get(r)
			if n == nil || !n.IsElement() || !strings.EqualFold(n.TagName, "html") {
				continue
			}
			if m.canonical == model.NoNode {
				m.canonical = remap[r]
			} else {
				loc := forest.Get(remap[r]).Location
				m.extraRoots = append(m.extraRoots, loc)
				logging.MergeWarn("additional <html> root at %s retained (canonical root wins)", loc)
			}
		}
	}
	if hasDOM {
		m.dom = forest
		m.elements = forest.Elements()
	}

	for _, ex := range extracts {
		if ex.Actions == nil {
			continue
		}
		m.models = append(m.models, ex.Actions)
		for _, a := range ex.Actions.All() {
			a.Location = a.Location.Normalize()
			m.actions = append(m.actions, a)
		}
	}

	// The join index is the sole basis for GetElementContext. Membership
	// depends only on the element and action sets, never on file order, so
	// merging in a different order yields the same joins.
	m.joined = make(map[model.NodeID][]int)
	unjoined := 0
	for i, a := range m.actions {
		matches := resolve.Resolve(a.Element, m.elements)
		if len(matches) == 0 {
			unjoined++
			continue
		}
		for _, el := range matches {
			m.joined[el.ID] = append(m.joined[el.ID], i)
		}
	}

	m.docCtx = computeDocumentContext(m.elements)
	m.fullPage = m.docCtx.HasHTMLTag || m.docCtx.HasBodyTag
	m.degraded = !hasDOM && len(m.models) > 0

	logging.Merge("merged %d extract(s): %d elements, %d actions (%d unjoined), fullPage=%v degraded=%v",
		len(extracts), len(m.elements), len(m.actions), unjoined, m.fullPage, m.degraded)
	return m
}
