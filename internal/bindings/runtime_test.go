package bindings

import (
	"testing"

	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/value"
)

func newRuntime() (*heap.Heap, *interp.Stepper) {
	h := heap.New()
	s := interp.New(h)
	Install(h, s)
	return h, s
}

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

func lookupGlobal(t *testing.T, h *heap.Heap, name string) value.Value {
	t.Helper()
	v, ok := h.Global.Lookup(name)
	if !ok {
		t.Fatalf("expected global %q to be bound", name)
	}
	return v
}

func program(stmts ...*ast.Node) *ast.Node {
	return ast.Program(stmts...)
}
