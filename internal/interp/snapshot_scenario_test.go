package interp_test

import (
	"path/filepath"
	"testing"

	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/bindings"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/snapshot"
	"github.com/Net-Set/CodeCity/internal/value"
)

// TestSnapshotMidLoopThenResumeInFreshProcess is scenario 4: pause after the
// first i++ of the accumulating for-loop, snapshot to disk, load that
// snapshot into a brand new Heap/Stepper pair (standing in for "a fresh
// process"), and resume — the final value must match the uninterrupted run.
func TestSnapshotMidLoopThenResumeInFreshProcess(t *testing.T) {
	root := ast.Program(
		ast.VarDecl(ast.Declarator("x", ast.Num(0))),
		ast.For(
			ast.VarDecl(ast.Declarator("i", ast.Num(0))),
			ast.Binary("<", ast.Ident("i"), ast.Num(3)),
			ast.Update("++", ast.Ident("i"), false),
			ast.Block(ast.ExprStmt(ast.Assign("+=", ast.Ident("x"), ast.Ident("i")))),
		),
	)

	h := heap.New()
	s := interp.New(h)
	bindings.Install(h, s)
	s.CreateThreadForSrc(root)

	steps := 0
	for steps < 10_000 {
		if i, ok := h.Global.Lookup("i"); ok {
			if n, isNum := i.(value.Number); isNum && float64(n) == 1 {
				break
			}
		}
		if !s.Step() {
			t.Fatal("program finished before the first i++ fired")
		}
		steps++
	}

	path := filepath.Join(t.TempDir(), "mid-loop.city")
	if err := snapshot.WriteFile(path, h, s); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	h2 := heap.New()
	s2 := interp.New(h2)
	bindings.Install(h2, s2)
	if err := snapshot.LoadFile(path, h2, s2, root); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	runToCompletion(t, s2)

	wantNumber(t, lookupGlobal(t, h2, "x"), 3)
}
