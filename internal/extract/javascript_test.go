package extract

import (
	"testing"

	"a11yscan/internal/model"
)

func parseJS(t *testing.T, src string) *model.FileExtract {
	t.Helper()
	ex, err := NewJSExtractor().Parse("app.js", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return ex
}

func TestJSAddEventListenerResolvesDeclaredBinding(t *testing.T) {
	src := `
const btn = document.getElementById("go");
btn.addEventListener("click", handleClick);
`
	ex := parseJS(t, src)

	if ex.DOM != nil {
		t.Error("script files must not contribute a DOM fragment")
	}
	clicks := ex.Actions.FindByEvent("click")
	if len(clicks) != 1 {
		t.Fatalf("click handlers = %d, want 1", len(clicks))
	}
	if clicks[0].Element.ID != "go" {
		t.Errorf("reference = %+v, want id go", clicks[0].Element)
	}
	if clicks[0].Location.Line != 3 {
		t.Errorf("location line = %d, want 3", clicks[0].Location.Line)
	}
	if clicks[0].Handler != "handleClick" {
		t.Errorf("handler text = %q", clicks[0].Handler)
	}
}

func TestJSInlineQueryReceiver(t *testing.T) {
	ex := parseJS(t, `document.querySelector(".menu").addEventListener("keydown", onKey);`)
	keys := ex.Actions.FindByEvent("keydown")
	if len(keys) != 1 || keys[0].Element.Selector != ".menu" {
		t.Fatalf("expected selector .menu, got %+v", keys)
	}
}

func TestJSOnPropertyAssignment(t *testing.T) {
	src := `
const save = document.getElementById("save");
save.onclick = () => submit();
`
	ex := parseJS(t, src)
	clicks := ex.Actions.FindByEvent("click")
	if len(clicks) != 1 || clicks[0].Element.ID != "save" {
		t.Fatalf("onclick assignment should yield a click handler on #save, got %+v", clicks)
	}
}

func TestJSScopeShadowing(t *testing.T) {
	src := `
const el = document.getElementById("outer");
function setup() {
  const el = document.querySelector(".inner");
  el.addEventListener("click", a);
}
el.addEventListener("click", b);
`
	ex := parseJS(t, src)
	clicks := ex.Actions.FindByEvent("click")
	if len(clicks) != 2 {
		t.Fatalf("click handlers = %d, want 2", len(clicks))
	}
	if clicks[0].Element.Selector != ".inner" {
		t.Errorf("inner handler should target .inner, got %+v", clicks[0].Element)
	}
	if clicks[1].Element.ID != "outer" {
		t.Errorf("outer handler should target #outer after scope pop, got %+v", clicks[1].Element)
	}
}

func TestJSAriaSetAttribute(t *testing.T) {
	src := `
const menu = document.getElementById("menu");
menu.setAttribute("aria-expanded", "true");
menu.setAttribute("data-open", "1");
`
	ex := parseJS(t, src)

	aria, ok := firstOfType(ex.Actions, model.ActionAriaStateChange)
	if !ok {
		t.Fatal("aria-* setAttribute should yield ariaStateChange")
	}
	if aria.Aria.Attribute != "aria-expanded" || aria.Aria.Value != "true" {
		t.Errorf("aria payload = %+v", aria.Aria)
	}

	manip, ok := firstOfType(ex.Actions, model.ActionDOMManipulation)
	if !ok || manip.Manipulation.Kind != "setAttribute" || manip.Manipulation.Target != "data-open" {
		t.Errorf("non-aria setAttribute should stay domManipulation, got %+v", manip.Manipulation)
	}
}

func TestJSClassListAndContentMutation(t *testing.T) {
	src := `
const panel = document.querySelector("#panel");
panel.classList.toggle("open");
panel.innerHTML = markup;
`
	ex := parseJS(t, src)

	var kinds []string
	for _, a := range ex.Actions.All() {
		if a.Type == model.ActionDOMManipulation {
			kinds = append(kinds, a.Manipulation.Kind)
			if a.Element.Selector != "#panel" {
				t.Errorf("mutation reference = %+v, want #panel", a.Element)
			}
		}
	}
	if len(kinds) != 2 || kinds[0] != "classList.toggle" || kinds[1] != "innerHTML" {
		t.Errorf("mutation kinds = %v", kinds)
	}
}

func TestJSFocusAndBlur(t *testing.T) {
	src := `
const input = document.getElementById("q");
input.focus();
input.blur();
`
	ex := parseJS(t, src)
	var dirs []string
	for _, a := range ex.Actions.All() {
		if a.Type == model.ActionFocusChange {
			dirs = append(dirs, a.Focus.Direction)
		}
	}
	if len(dirs) != 2 || dirs[0] != "gain" || dirs[1] != "loss" {
		t.Errorf("focus directions = %v", dirs)
	}
}

func TestJSEventPropagation(t *testing.T) {
	src := `
document.getElementById("form").addEventListener("submit", (e) => {
  e.preventDefault();
});
`
	ex := parseJS(t, src)
	prop, ok := firstOfType(ex.Actions, model.ActionEventPropagation)
	if !ok || prop.Propagation.Method != "preventDefault" {
		t.Fatalf("expected preventDefault propagation, got %+v ok=%v", prop, ok)
	}
}

func TestJSDeferredTiming(t *testing.T) {
	src := `
const toast = document.getElementById("toast");
toast.focus();
setTimeout(() => {
  toast.setAttribute("aria-hidden", "true");
  toast.focus();
}, 3000);
`
	ex := parseJS(t, src)

	var immediate, deferred int
	for _, a := range ex.Actions.All() {
		switch a.Timing {
		case model.TimingImmediate:
			immediate++
		case model.TimingDeferred:
			deferred++
		}
	}
	if immediate != 1 {
		t.Errorf("immediate actions = %d, want 1", immediate)
	}
	if deferred != 2 {
		t.Errorf("deferred actions = %d, want 2", deferred)
	}
}

func TestJSDocumentBodyReceiver(t *testing.T) {
	ex := parseJS(t, `document.body.addEventListener("keydown", trapFocus);`)
	keys := ex.Actions.FindByEvent("keydown")
	if len(keys) != 1 || keys[0].Element.Selector != "body" {
		t.Fatalf("document.body should reference the body tag, got %+v", keys)
	}
}

func TestJSUnknownReceiverDegradesToBinding(t *testing.T) {
	ex := parseJS(t, `widget.addEventListener("click", go);`)
	clicks := ex.Actions.FindByEvent("click")
	if len(clicks) != 1 || clicks[0].Element.Binding != "widget" {
		t.Fatalf("undeclared receiver should carry its name as binding, got %+v", clicks)
	}
}

func TestJSTypeScriptGrammar(t *testing.T) {
	src := `
const btn: HTMLButtonElement = document.getElementById("go") as HTMLButtonElement;
btn.addEventListener("click", (e: MouseEvent) => run());
`
	ex, err := NewJSExtractor().Parse("app.ts", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	clicks := ex.Actions.FindByEvent("click")
	if len(clicks) != 1 || clicks[0].Element.ID != "go" {
		t.Fatalf("typed source should extract like plain js, got %+v", clicks)
	}
}
