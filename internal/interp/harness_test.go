package interp_test

import (
	"testing"

	"github.com/Net-Set/CodeCity/internal/bindings"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/value"
)

// newRuntime builds a fully host-bindings-installed Heap/Stepper pair with no
// program loaded yet, the same sequence bindings.Install's own doc comment
// and every Supervisor.New call follow.
func newRuntime() (*heap.Heap, *interp.Stepper) {
	h := heap.New()
	s := interp.New(h)
	bindings.Install(h, s)
	return h, s
}

// runToCompletion steps s until every program stack is done, failing the
// test well short of a genuine infinite loop rather than hanging the suite.
func runToCompletion(t *testing.T, s *interp.Stepper) {
	t.Helper()
	const budget = 1_000_000
	for i := 0; i < budget; i++ {
		if !s.Step() {
			if s.Fatal != nil {
				t.Fatalf("stepper halted with fatal error: %v", s.Fatal)
			}
			return
		}
	}
	t.Fatalf("program did not complete within %d steps", budget)
}

// lookupGlobal fetches name from the global scope, failing the test if it
// was never bound.
func lookupGlobal(t *testing.T, h *heap.Heap, name string) value.Value {
	t.Helper()
	v, ok := h.Global.Lookup(name)
	if !ok {
		t.Fatalf("expected global %q to be bound", name)
	}
	return v
}

func wantNumber(t *testing.T, v value.Value, want float64) {
	t.Helper()
	n, ok := v.(value.Number)
	if !ok || float64(n) != want {
		t.Errorf("expected number %v, got %v (%T)", want, v, v)
	}
}

func wantString(t *testing.T, v value.Value, want string) {
	t.Helper()
	s, ok := v.(value.String)
	if !ok || string(s) != want {
		t.Errorf("expected string %q, got %v (%T)", want, v, v)
	}
}
