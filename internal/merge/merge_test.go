package merge

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"a11yscan/internal/domtest"
	"a11yscan/internal/model"
)

// pairKey is a location-independent identity for a join edge, used to
// compare join indices across merges of reordered inputs.
type pairKey struct {
	ElementFile string
	ElementLine int
	ElementTag  string
	ActionType  model.ActionType
	ActionEvent string
	ActionFile  string
	ActionLine  int
}

func joinKeys(m *DocumentModel) []pairKey {
	var keys []pairKey
	for _, p := range m.JoinedPairs() {
		keys = append(keys, pairKey{
			ElementFile: p.Element.Location.File,
			ElementLine: p.Element.Location.Line,
			ElementTag:  p.Element.TagName,
			ActionType:  p.Action.Type,
			ActionEvent: p.Action.Event,
			ActionFile:  p.Action.Location.File,
			ActionLine:  p.Action.Location.Line,
		})
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.ElementFile != b.ElementFile {
			return a.ElementFile < b.ElementFile
		}
		if a.ElementLine != b.ElementLine {
			return a.ElementLine < b.ElementLine
		}
		if a.ActionFile != b.ActionFile {
			return a.ActionFile < b.ActionFile
		}
		if a.ActionLine != b.ActionLine {
			return a.ActionLine < b.ActionLine
		}
		return a.ActionEvent < b.ActionEvent
	})
	return keys
}

// crossFileExtracts models the canonical scenario: markup in one file,
// click handler in a second, keyboard handler in a third.
func crossFileExtracts() []model.FileExtract {
	page := domtest.New("page.html")
	page.Open("html").Open("body").
		El("button", "id", "go").
		El("p").
		Close().Close()

	clicks := domtest.ActionsOnly("click.js",
		model.NewEventHandler(model.ElementReference{ID: "go"}, "click", "doGo()",
			model.SourceLocation{File: "click.js", Line: 3, Column: 1}))

	keys := domtest.ActionsOnly("keys.js",
		model.NewEventHandler(model.ElementReference{ID: "go"}, "keydown", "onKey()",
			model.SourceLocation{File: "keys.js", Line: 7, Column: 1}))

	return []model.FileExtract{page.Extract(nil), clicks, keys}
}

func findByTag(m *DocumentModel, tag string) *model.DOMElement {
	for _, e := range m.GetAllElements() {
		if e.TagName == tag {
			return e
		}
	}
	return nil
}

func TestMerge_CrossFileJoinCompleteness(t *testing.T) {
	extracts := crossFileExtracts()

	// Without the keyboard file the button has a click handler only.
	partial := Merge(extracts[:2])
	btn := findByTag(partial, "button")
	if btn == nil {
		t.Fatal("button not found in merged model")
	}
	ctx := partial.GetElementContext(btn)
	if !ctx.HasClickHandler {
		t.Errorf("click handler from sibling file not joined")
	}
	if ctx.HasKeyboardHandler {
		t.Errorf("keyboard handler reported before its file was supplied")
	}

	// Adding the keyboard file flips HasKeyboardHandler.
	full := Merge(extracts)
	btn = findByTag(full, "button")
	ctx = full.GetElementContext(btn)
	if !ctx.HasClickHandler || !ctx.HasKeyboardHandler {
		t.Errorf("context = click:%v keyboard:%v, want both true",
			ctx.HasClickHandler, ctx.HasKeyboardHandler)
	}
	if len(ctx.JSHandlers) != 2 {
		t.Errorf("joined handlers = %d, want 2", len(ctx.JSHandlers))
	}
}

func TestMerge_OrderIndependence(t *testing.T) {
	extracts := crossFileExtracts()
	want := joinKeys(Merge(extracts))

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		shuffled := append([]model.FileExtract(nil), extracts...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := joinKeys(Merge(shuffled))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("trial %d: join index differs under reordering (-want +got):\n%s", trial, diff)
		}
	}
}

func TestMerge_Idempotence(t *testing.T) {
	extracts := crossFileExtracts()

	first := Merge(extracts)
	second := Merge(extracts)

	if diff := cmp.Diff(joinKeys(first), joinKeys(second)); diff != "" {
		t.Errorf("repeated merge not index-equal (-first +second):\n%s", diff)
	}
	if first.IsFullPage() != second.IsFullPage() || first.Degraded() != second.Degraded() {
		t.Errorf("derived flags differ across identical merges")
	}
}

func TestMerge_ZeroMatchSafety(t *testing.T) {
	page := domtest.New("page.html")
	page.Open("body").El("button", "id", "go").Close()

	orphan := domtest.ActionsOnly("orphan.js",
		model.NewEventHandler(model.ElementReference{ID: "missing"}, "click", "",
			model.SourceLocation{File: "orphan.js", Line: 1, Column: 1}))

	m := Merge([]model.FileExtract{page.Extract(nil), orphan})

	for _, e := range m.GetAllElements() {
		if got := m.GetElementContext(e); len(got.JSHandlers) != 0 {
			t.Errorf("orphan action joined to <%s>", e.TagName)
		}
	}
	// The action itself is retained, just unjoined.
	if len(m.AllActions()) != 1 {
		t.Errorf("actions = %d, want 1", len(m.AllActions()))
	}
}

func TestMerge_MultiRootRetention(t *testing.T) {
	a := domtest.New("a.html")
	a.Open("html").Open("body").El("h1").Close().Close()
	b := domtest.New("b.html")
	b.Open("html").Open("body").El("h2").Close().Close()

	m := Merge([]model.FileExtract{a.Extract(nil), b.Extract(nil)})

	if findByTag(m, "h1") == nil || findByTag(m, "h2") == nil {
		t.Fatalf("elements from one fragment were dropped")
	}
	canon := m.DOM().Get(m.CanonicalRoot())
	if canon == nil || canon.Location.File != "a.html" {
		t.Errorf("canonical root should come from the first fragment, got %+v", canon)
	}
	if len(m.ExtraRoots()) != 1 || m.ExtraRoots()[0].File != "b.html" {
		t.Errorf("extra roots = %+v, want the b.html root", m.ExtraRoots())
	}
}

func TestMerge_SentinelLocation(t *testing.T) {
	acts := model.NewActionModel("")
	acts.Append(model.ActionNode{
		Type:    model.ActionEventHandler,
		Element: model.ElementReference{ID: "x"},
		Event:   "click",
		// Location left zero: malformed on purpose.
	})

	m := Merge([]model.FileExtract{{File: "", Actions: acts}})

	got := m.AllActions()[0].Location
	if got != model.UnknownLocation() {
		t.Errorf("location = %+v, want sentinel {unknown,1,1}", got)
	}
}

func TestMerge_NoDeduplicationByLocation(t *testing.T) {
	loc := model.SourceLocation{File: "app.js", Line: 5, Column: 1}
	m := Merge([]model.FileExtract{domtest.ActionsOnly("app.js",
		model.NewEventHandler(model.ElementReference{ID: "a"}, "click", "one", loc),
		model.NewEventHandler(model.ElementReference{ID: "a"}, "click", "two", loc),
	)})

	if len(m.AllActions()) != 2 {
		t.Errorf("identical locations must stay independent entities, got %d actions", len(m.AllActions()))
	}
}

func TestMerge_EmptyInput(t *testing.T) {
	m := Merge(nil)
	if m == nil {
		t.Fatal("merge must be total: nil input still yields a model")
	}
	if len(m.GetAllElements()) != 0 || m.IsFullPage() || m.Degraded() {
		t.Errorf("empty merge should be an empty, non-degraded model")
	}
}
