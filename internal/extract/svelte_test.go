package extract

import (
	"testing"

	"a11yscan/internal/model"
)

func TestSvelteMarkupAndScript(t *testing.T) {
	src := `<script>
  let open = false;
  const dialog = document.getElementById("dialog");
  dialog.focus();
</script>

<button on:click|preventDefault={toggle} aria-controls="dialog">Menu</button>
<div id="dialog" role="dialog">content</div>

<style>
  button { color: blue; }
</style>`

	ex, err := NewSvelteExtractor().Parse("Menu.svelte", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if findTag(ex.DOM, "script") != nil || findTag(ex.DOM, "style") != nil {
		t.Error("script and style blocks must not appear in the DOM")
	}

	btn := findTag(ex.DOM, "button")
	if btn == nil {
		t.Fatal("button not found")
	}
	if btn.Location.Line != 7 {
		t.Errorf("button line = %d, want 7 (file coordinates)", btn.Location.Line)
	}

	clicks := ex.Actions.FindByEvent("click")
	if len(clicks) != 1 {
		t.Fatalf("click handlers = %d, want 1", len(clicks))
	}

	focus, ok := firstOfType(ex.Actions, model.ActionFocusChange)
	if !ok || focus.Element.ID != "dialog" {
		t.Fatalf("script focus should extract, got %+v ok=%v", focus, ok)
	}
	if focus.Location.Line != 4 {
		t.Errorf("script action line = %d, want 4", focus.Location.Line)
	}

	for _, root := range ex.DOM.Roots() {
		if ex.DOM.Get(root).Meta(model.MetaScopedStyle) != "true" {
			t.Error("component style should mark roots as scoped")
		}
	}
}

func TestSvelteEventModifierSyntax(t *testing.T) {
	ex, err := NewSvelteExtractor().Parse("Key.svelte", []byte(`<input on:keydown={onKey}>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := ex.Actions.FindByEvent("keydown"); len(got) != 1 {
		t.Errorf("on:keydown handlers = %d, want 1", len(got))
	}
}
