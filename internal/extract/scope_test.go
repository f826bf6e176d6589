package extract

import (
	"testing"

	"a11yscan/internal/model"
)

func TestScopeLookupInnermostWins(t *testing.T) {
	s := NewScope()
	s.Declare("btn", model.ElementReference{ID: "outer"})

	inner := s.Push()
	inner.Declare("btn", model.ElementReference{ID: "inner"})

	ref, ok := inner.Lookup("btn")
	if !ok {
		t.Fatal("expected btn in inner scope")
	}
	if ref.ID != "inner" {
		t.Errorf("inner declaration should shadow outer, got %q", ref.ID)
	}

	ref, ok = inner.Pop().Lookup("btn")
	if !ok || ref.ID != "outer" {
		t.Errorf("after pop expected outer declaration, got %+v ok=%v", ref, ok)
	}
}

func TestScopeLookupWalksChain(t *testing.T) {
	s := NewScope()
	s.Declare("menu", model.ElementReference{Selector: ".menu"})

	deep := s.Push().Push().Push()
	ref, ok := deep.Lookup("menu")
	if !ok || ref.Selector != ".menu" {
		t.Errorf("deep scope should see outer declaration, got %+v ok=%v", ref, ok)
	}

	if _, ok := deep.Lookup("missing"); ok {
		t.Error("undeclared name should not resolve")
	}
}

func TestScopeIgnoresEmptyDeclarations(t *testing.T) {
	s := NewScope()
	s.Declare("", model.ElementReference{ID: "x"})
	s.Declare("el", model.ElementReference{})

	if _, ok := s.Lookup(""); ok {
		t.Error("empty name should not be declared")
	}
	if _, ok := s.Lookup("el"); ok {
		t.Error("zero reference should not be declared")
	}
}

func TestScopePopAtRootIsSafe(t *testing.T) {
	s := NewScope()
	if got := s.Pop(); got == nil {
		t.Fatal("popping the root scope must not return nil")
	}
}
