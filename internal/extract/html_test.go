package extract

import (
	"strings"
	"testing"

	"a11yscan/internal/model"
)

func parseHTML(t *testing.T, src string) *model.FileExtract {
	t.Helper()
	ex, err := NewHTMLExtractor().Parse("page.html", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return ex
}

func firstOfType(m *model.ActionModel, typ model.ActionType) (model.ActionNode, bool) {
	for _, a := range m.All() {
		if a.Type == typ {
			return a, true
		}
	}
	return model.ActionNode{}, false
}

func findTag(f *model.Forest, tag string) *model.DOMElement {
	var found *model.DOMElement
	f.Walk(func(el *model.DOMElement) bool {
		if el.IsElement() && el.TagName == tag {
			found = el
			return false
		}
		return true
	})
	return found
}

func TestHTMLFullDocumentStructure(t *testing.T) {
	src := `<!DOCTYPE html>
<html lang="en">
<head><title>Demo</title></head>
<body>
  <button id="go" class="primary">Go</button>
  <img src="logo.png">
</body>
</html>`
	ex := parseHTML(t, src)

	roots := ex.DOM.Roots()
	if len(roots) != 1 {
		t.Fatalf("expected single root, got %d", len(roots))
	}
	html := ex.DOM.Get(roots[0])
	if html.TagName != "html" {
		t.Fatalf("root tag = %q, want html", html.TagName)
	}
	if v, _ := html.Attr("lang"); v != "en" {
		t.Errorf("lang = %q, want en", v)
	}

	btn := findTag(ex.DOM, "button")
	if btn == nil {
		t.Fatal("button not found")
	}
	if !btn.HasClass("primary") {
		t.Error("button should carry class primary")
	}
	if btn.Location.Line != 5 {
		t.Errorf("button line = %d, want 5", btn.Location.Line)
	}
	if !strings.Contains(btn.TextContent, "Go") {
		t.Errorf("button text = %q", btn.TextContent)
	}

	body := findTag(ex.DOM, "body")
	img := findTag(ex.DOM, "img")
	if img == nil || img.Parent != body.ID {
		t.Error("void img should attach to body without opening a scope")
	}
}

func TestHTMLFragmentKeepsMultipleRoots(t *testing.T) {
	ex := parseHTML(t, "<p>one</p>\n<p>two</p>")
	if got := len(ex.DOM.Roots()); got != 2 {
		t.Errorf("fragment roots = %d, want 2", got)
	}
	// A fragment must not grow synthetic html/head/body wrappers.
	if findTag(ex.DOM, "html") != nil || findTag(ex.DOM, "body") != nil {
		t.Error("fragment parse must not synthesize document wrappers")
	}
}

func TestHTMLStrayEndTagIgnored(t *testing.T) {
	ex := parseHTML(t, "<div><span>x</span></p></div><em>y</em>")
	div := findTag(ex.DOM, "div")
	em := findTag(ex.DOM, "em")
	if div == nil || em == nil {
		t.Fatal("expected div and em")
	}
	if em.Parent != model.NoNode {
		t.Error("em should be a root; stray </p> must not corrupt the stack")
	}
}

func TestHTMLInlineHandlerActions(t *testing.T) {
	src := `<button id="save" onclick="save(); event.preventDefault()">Save</button>`
	ex := parseHTML(t, src)

	clicks := ex.Actions.FindByEvent("click")
	if len(clicks) != 1 {
		t.Fatalf("click handlers = %d, want 1", len(clicks))
	}
	if clicks[0].Element.ID != "save" {
		t.Errorf("handler reference = %+v, want id save", clicks[0].Element)
	}
	if clicks[0].Timing != model.TimingImmediate {
		t.Errorf("inline handler timing = %q", clicks[0].Timing)
	}

	prop, ok := firstOfType(ex.Actions, model.ActionEventPropagation)
	if !ok || prop.Propagation.Method != "preventDefault" {
		t.Error("handler text with preventDefault should yield a propagation action")
	}
}

func TestHTMLAngularConventions(t *testing.T) {
	src := `<button #savebtn (click)="save()">Save</button>
<div [aria-expanded]="open"></div>`
	ex := parseHTML(t, src)

	btn := findTag(ex.DOM, "button")
	if btn.Binding() != "savebtn" {
		t.Errorf("template variable binding = %q, want savebtn", btn.Binding())
	}

	clicks := ex.Actions.FindByEvent("click")
	if len(clicks) != 1 || clicks[0].Element.Binding != "savebtn" {
		t.Fatalf("(click) binding should target savebtn, got %+v", clicks)
	}

	aria, ok := firstOfType(ex.Actions, model.ActionAriaStateChange)
	if !ok || aria.Aria.Attribute != "aria-expanded" {
		t.Error("[aria-expanded] should yield an ariaStateChange action")
	}
}

func TestHTMLEventModifierStripped(t *testing.T) {
	ex := parseHTML(t, `<input @keydown.enter="submit()">`)
	if got := ex.Actions.FindByEvent("keydown"); len(got) != 1 {
		t.Errorf("keydown.enter should register as keydown, got %d", len(got))
	}
}
