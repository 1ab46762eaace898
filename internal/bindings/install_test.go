package bindings

import (
	"testing"

	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/value"
)

// protectedGlobals lists every builtin Install wires into the global scope
// via the global()/wireCtor() helpers: constructors, the Math/JSON
// namespace objects, console/system, eval, and the free numeric/URI
// functions. None of these may be deleted by user code.
var protectedGlobals = []string{
	"Object", "Function", "Array", "String", "Number", "Boolean", "Date", "RegExp",
	"Error", "EvalError", "RangeError", "ReferenceError", "SyntaxError", "TypeError", "URIError",
	"Math", "JSON", "console", "system", "eval",
	"isNaN", "isFinite", "parseInt", "parseFloat",
	"encodeURIComponent", "decodeURIComponent", "encodeURI", "decodeURI",
}

func TestInstallBindsEveryBuiltin(t *testing.T) {
	h := heap.New()
	s := interp.New(h)
	Install(h, s)

	for _, name := range protectedGlobals {
		if !h.Global.HasOwn(name) {
			t.Errorf("expected global %q to be bound after Install", name)
		}
	}
	for _, name := range []string{"undefined", "NaN", "Infinity"} {
		if !h.Global.HasOwn(name) {
			t.Errorf("expected global %q to be bound after Install", name)
		}
	}
}

// TestBuiltinsRefuseDeletion is the ES5 "writable, but DontDelete" check:
// delete Array (and every other builtin) must silently fail, matching
// spec.md's invariant that user code cannot remove a builtin from scope.
func TestBuiltinsRefuseDeletion(t *testing.T) {
	h := heap.New()
	s := interp.New(h)
	Install(h, s)

	for _, name := range protectedGlobals {
		if h.Global.DeleteOwn(name) {
			t.Errorf("delete %s should have failed, but the binding was removed", name)
		}
		if !h.Global.HasOwn(name) {
			t.Errorf("%s should still be bound after a refused delete", name)
		}
	}
}

// TestBuiltinsStayWritable distinguishes builtin non-deletability from the
// separate, narrower read-only case (undefined/NaN/Infinity): ordinary
// assignment over a builtin must still succeed, even though deleting it
// does not.
func TestBuiltinsStayWritable(t *testing.T) {
	h := heap.New()
	s := interp.New(h)
	Install(h, s)

	if !h.Global.Assign("Array", value.Number(3)) {
		t.Error("assigning over a builtin global should succeed (writable, not read-only)")
	}
	v, _ := h.Global.Lookup("Array")
	if n, ok := v.(value.Number); !ok || float64(n) != 3 {
		t.Errorf("expected Array reassigned to 3, got %v", v)
	}
}

// TestUndefinedNaNInfinityAreBothReadOnlyAndUndeletable checks the one set
// of globals that are read-only in addition to being non-deletable.
func TestUndefinedNaNInfinityAreBothReadOnlyAndUndeletable(t *testing.T) {
	h := heap.New()
	s := interp.New(h)
	Install(h, s)

	for _, name := range []string{"undefined", "NaN", "Infinity"} {
		if h.Global.Assign(name, value.Number(1)) {
			t.Errorf("assigning over %s should fail, it is read-only", name)
		}
		if h.Global.DeleteOwn(name) {
			t.Errorf("delete %s should fail", name)
		}
	}
}
