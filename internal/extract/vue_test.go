package extract

import (
	"testing"

	"a11yscan/internal/model"
)

func TestVueTemplateAndScriptBlocks(t *testing.T) {
	src := `<template>
  <div class="panel">
    <button ref="toggle" @click.prevent="open">Open</button>
  </div>
</template>

<script>
export default {
  mounted() {
    const panel = document.querySelector(".panel");
    panel.setAttribute("aria-hidden", "false");
  }
}
</script>

<style scoped>
.panel { color: red; }
</style>`

	ex, err := NewVueExtractor().Parse("Panel.vue", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	btn := findTag(ex.DOM, "button")
	if btn == nil {
		t.Fatal("template button not found")
	}
	if btn.Binding() != "toggle" {
		t.Errorf("ref attribute should declare binding, got %q", btn.Binding())
	}
	if btn.Location.Line != 3 {
		t.Errorf("template line = %d, want 3 (file coordinates)", btn.Location.Line)
	}

	clicks := ex.Actions.FindByEvent("click")
	if len(clicks) != 1 || clicks[0].Element.Binding != "toggle" {
		t.Fatalf("@click should target the ref binding, got %+v", clicks)
	}

	prop, ok := firstOfType(ex.Actions, model.ActionEventPropagation)
	if !ok || prop.Propagation.Method != "preventDefault" {
		t.Error(".prevent modifier should yield a preventDefault action")
	}

	aria, ok := firstOfType(ex.Actions, model.ActionAriaStateChange)
	if !ok || aria.Aria.Attribute != "aria-hidden" {
		t.Fatalf("script setAttribute should extract, got %+v ok=%v", aria, ok)
	}
	if aria.Element.Selector != ".panel" {
		t.Errorf("script action reference = %+v, want .panel", aria.Element)
	}

	for _, root := range ex.DOM.Roots() {
		if ex.DOM.Get(root).Meta(model.MetaScopedStyle) != "true" {
			t.Error("style block should mark template roots as scoped")
		}
	}
}

func TestVueScriptLinesStayInFileCoordinates(t *testing.T) {
	src := `<template>
  <input id="q">
</template>
<script>
const q = document.getElementById("q");
q.focus();
</script>`

	ex, err := NewVueExtractor().Parse("Search.vue", []byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	focus, ok := firstOfType(ex.Actions, model.ActionFocusChange)
	if !ok {
		t.Fatal("focus call not extracted")
	}
	if focus.Location.Line != 6 {
		t.Errorf("script action line = %d, want 6", focus.Location.Line)
	}
	if focus.Element.ID != "q" {
		t.Errorf("focus reference = %+v, want id q", focus.Element)
	}
}

func TestVueWithoutScriptOrStyle(t *testing.T) {
	ex, err := NewVueExtractor().Parse("Static.vue", []byte("<template><p>hi</p></template>"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if findTag(ex.DOM, "p") == nil {
		t.Error("template content missing")
	}
	if ex.Actions.Len() != 0 {
		t.Errorf("static component should have no actions, got %d", ex.Actions.Len())
	}
	for _, root := range ex.DOM.Roots() {
		if ex.DOM.Get(root).Meta(model.MetaScopedStyle) != "" {
			t.Error("no style block, no scoped marker")
		}
	}
}
