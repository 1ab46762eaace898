package heap

import (
	"testing"

	"github.com/Net-Set/CodeCity/internal/value"
)

func TestNewScope(t *testing.T) {
	s := NewScope(nil)
	if s.Outer() != nil {
		t.Error("root scope should have no outer scope")
	}
	if len(s.Names()) != 0 {
		t.Errorf("new scope should be empty, got %v", s.Names())
	}
}

func TestDeclareAndLookup(t *testing.T) {
	s := NewScope(nil)
	s.Declare("x", value.Number(42), false)

	v, ok := s.Lookup("x")
	if !ok {
		t.Fatal("variable 'x' not found after declaration")
	}
	if n, isNum := v.(value.Number); !isNum || float64(n) != 42 {
		t.Errorf("expected 42, got %v", v)
	}
}

func TestLookupMissing(t *testing.T) {
	s := NewScope(nil)
	if _, ok := s.Lookup("missing"); ok {
		t.Error("expected lookup of undeclared name to fail")
	}
}

func TestLookupWalksOuter(t *testing.T) {
	outer := NewScope(nil)
	outer.Declare("x", value.Number(1), false)
	inner := NewScope(outer)

	v, ok := inner.Lookup("x")
	if !ok || v.(value.Number) != 1 {
		t.Errorf("inner scope should resolve 'x' through outer, got %v, %v", v, ok)
	}
}

func TestAssignUpdatesDefiningScope(t *testing.T) {
	outer := NewScope(nil)
	outer.Declare("x", value.Number(1), false)
	inner := NewScope(outer)

	if !inner.Assign("x", value.Number(2)) {
		t.Fatal("assign through inner scope should reach outer binding")
	}
	v, _ := outer.Lookup("x")
	if v.(value.Number) != 2 {
		t.Errorf("expected outer binding updated to 2, got %v", v)
	}
}

func TestAssignUnknownFails(t *testing.T) {
	s := NewScope(nil)
	if s.Assign("never-declared", value.Number(1)) {
		t.Error("assign to an undeclared name should fail")
	}
}

func TestReadOnlyBindingRefusesAssign(t *testing.T) {
	s := NewScope(nil)
	s.Declare("arguments", value.Number(1), true)
	if s.Assign("arguments", value.Number(2)) {
		t.Error("assigning to a read-only binding should fail")
	}
	if s.DeleteOwn("arguments") {
		t.Error("deleting a read-only binding should fail")
	}
}

func TestDeclareShadowsOuter(t *testing.T) {
	outer := NewScope(nil)
	outer.Declare("x", value.Number(1), false)
	inner := NewScope(outer)
	inner.Declare("x", value.Number(99), false)

	v, _ := inner.Lookup("x")
	if v.(value.Number) != 99 {
		t.Errorf("inner declaration should shadow outer, got %v", v)
	}
	outerV, _ := outer.Lookup("x")
	if outerV.(value.Number) != 1 {
		t.Error("shadowing in inner scope must not mutate outer binding")
	}
}
