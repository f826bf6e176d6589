package facts

import (
	"github.com/google/mangle/ast"

	"a11yscan/internal/merge"
	"a11yscan/internal/model"
)

// Export flattens a document model into facts over six predicates:
//
//	dom_element(Id, Tag, File, Line)
//	dom_attr(Id, Name, Value)
//	dom_parent(Child, Parent)
//	ui_action(Idx, Type, Event, File, Line, Deferred)
//	action_joined(Idx, ElementId)
//	document_context(HasHtml, HasHead, HasBody, HasExternalCss, FullPage, Degraded)
//
// Element ids are the forest's node ids, action ids are indexes into the
// merged action list, so the join edges round-trip exactly.
func Export(doc *merge.DocumentModel) []Fact {
	var out []Fact

	for _, e := range doc.GetAllElements() {
		out = append(out, Fact{
			Predicate: "dom_element",
			Args: []interface{}{
				int(e.ID), name(e.TagName), e.Location.File, e.Location.Line,
			},
		})
		for _, a := range e.Attributes {
			out = append(out, Fact{
				Predicate: "dom_attr",
				Args:      []interface{}{int(e.ID), a.Name, a.Value},
			})
		}
		if e.Parent != model.NoNode {
			out = append(out, Fact{
				Predicate: "dom_parent",
				Args:      []interface{}{int(e.ID), int(e.Parent)},
			})
		}
	}

	for i, a := range doc.AllActions() {
		out = append(out, Fact{
			Predicate: "ui_action",
			Args: []interface{}{
				i, name(string(a.Type)), a.Event,
				a.Location.File, a.Location.Line,
				a.Timing == model.TimingDeferred,
			},
		})
	}

	for _, p := range doc.JoinedPairs() {
		out = append(out, Fact{
			Predicate: "action_joined",
			Args:      []interface{}{p.ActionIndex, int(p.Element.ID)},
		})
	}

	ctx := doc.GetDocumentContext()
	out = append(out, Fact{
		Predicate: "document_context",
		Args: []interface{}{
			ctx.HasHTMLTag, ctx.HasHeadTag, ctx.HasBodyTag, ctx.HasExternalCSS,
			doc.IsFullPage(), doc.Degraded(),
		},
	})

	return out
}

// Atoms converts exported facts to Mangle atoms, skipping any that fail
// conversion.
func Atoms(fs []Fact) []ast.Atom {
	atoms := make([]ast.Atom, 0, len(fs))
	for _, f := range fs {
		a, err := f.ToAtom()
		if err != nil {
			continue
		}
		atoms = append(atoms, a)
	}
	return atoms
}
