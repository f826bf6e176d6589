package facts

import (
	"strings"
	"testing"

	"a11yscan/internal/domtest"
	"a11yscan/internal/merge"
	"a11yscan/internal/model"
)

func TestFactString(t *testing.T) {
	f := Fact{
		Predicate: "dom_element",
		Args:      []interface{}{3, NameConstant("/button"), "page.html", 7},
	}
	want := `dom_element(3, /button, "page.html", 7).`
	if got := f.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestFactToAtom(t *testing.T) {
	f := Fact{
		Predicate: "ui_action",
		Args:      []interface{}{0, NameConstant("/eventhandler"), "click", "a.js", 2, false},
	}
	atom, err := f.ToAtom()
	if err != nil {
		t.Fatalf("ToAtom: %v", err)
	}
	if atom.Predicate.Symbol != "ui_action" {
		t.Errorf("predicate = %q", atom.Predicate.Symbol)
	}
	if len(atom.Args) != 6 {
		t.Errorf("args = %d, want 6", len(atom.Args))
	}
}

func TestFactToAtomRejectsBadName(t *testing.T) {
	f := Fact{Predicate: "p", Args: []interface{}{NameConstant("/bad//name")}}
	if _, err := f.ToAtom(); err == nil {
		t.Error("double slash name constant should fail conversion")
	}
}

func TestNameSanitizes(t *testing.T) {
	if got := name("aria-expanded"); got != "/aria_expanded" {
		t.Errorf("name = %s", got)
	}
	if got := name("!!"); got != "/unknown" {
		t.Errorf("empty sanitized name = %s", got)
	}
}

func TestExportRoundTripsJoinEdges(t *testing.T) {
	page := domtest.New("page.html").
		Open("body").
		El("button", "id", "go").
		Close()
	script := domtest.ActionsOnly("app.js",
		model.NewEventHandler(model.ElementReference{ID: "go"}, "click", "run()",
			model.SourceLocation{File: "app.js", Line: 1, Column: 1}))

	doc := merge.Merge([]model.FileExtract{page.Extract(nil), script})
	fs := Export(doc)

	count := func(pred string) int {
		n := 0
		for _, f := range fs {
			if f.Predicate == pred {
				n++
			}
		}
		return n
	}

	if count("dom_element") != 2 {
		t.Errorf("dom_element facts = %d, want 2", count("dom_element"))
	}
	if count("dom_parent") != 1 {
		t.Errorf("dom_parent facts = %d, want 1", count("dom_parent"))
	}
	if count("ui_action") != 1 {
		t.Errorf("ui_action facts = %d, want 1", count("ui_action"))
	}
	if count("action_joined") != len(doc.JoinedPairs()) {
		t.Errorf("action_joined facts = %d, join index has %d edges",
			count("action_joined"), len(doc.JoinedPairs()))
	}
	if count("document_context") != 1 {
		t.Error("expected exactly one document_context fact")
	}

	var source strings.Builder
	for _, f := range fs {
		source.WriteString(f.String())
		source.WriteByte('\n')
	}
	if !strings.Contains(source.String(), "dom_attr(") {
		t.Error("button id attribute missing from export")
	}

	if atoms := Atoms(fs); len(atoms) != len(fs) {
		t.Errorf("atom conversion dropped facts: %d of %d", len(atoms), len(fs))
	}
}
