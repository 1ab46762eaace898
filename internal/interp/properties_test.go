package interp_test

import (
	"testing"

	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/value"
)

func fibProgram() *ast.Node {
	fib := ast.FuncDecl("f", []string{"n"}, ast.Block(
		ast.Return(ast.Cond(
			ast.Binary("<", ast.Ident("n"), ast.Num(2)),
			ast.Ident("n"),
			ast.Binary("+",
				ast.Call(ast.Ident("f"), ast.Binary("-", ast.Ident("n"), ast.Num(1))),
				ast.Call(ast.Ident("f"), ast.Binary("-", ast.Ident("n"), ast.Num(2))),
			),
		)),
	))
	return ast.Program(
		fib,
		ast.VarDecl(ast.Declarator("result", ast.Call(ast.Ident("f"), ast.Num(9)))),
	)
}

// TestPauseTransparency checks that a host pausing and resuming the stepper
// between arbitrary steps never perturbs the eventual result: interleaving
// Pause/Resume calls every few steps must reach the same final value as an
// uninterrupted Step loop.
func TestPauseTransparency(t *testing.T) {
	baseH, baseS := newRuntime()
	baseS.CreateThreadForSrc(fibProgram())
	runToCompletion(t, baseS)
	want := lookupGlobal(t, baseH, "result")

	h, s := newRuntime()
	s.CreateThreadForSrc(fibProgram())
	steps := 0
	for steps < 1_000_000 {
		if steps%7 == 0 {
			s.Pause()
			s.Resume()
		}
		if !s.Step() {
			break
		}
		steps++
	}
	got := lookupGlobal(t, h, "result")
	if got.(value.Number) != want.(value.Number) {
		t.Errorf("interleaved pause/resume changed the result: got %v, want %v", got, want)
	}
}

// TestCatchReceivesExactThrownValue checks that a catch parameter is bound
// to exactly the thrown value, not a copy or a wrapped error object.
func TestCatchReceivesExactThrownValue(t *testing.T) {
	h, s := newRuntime()
	root := ast.Program(
		ast.VarDecl(ast.Declarator("caught", ast.Undef())),
		ast.Try(
			ast.Block(ast.Throw(ast.Str("boom"))),
			ast.Catch("e", ast.Block(ast.ExprStmt(ast.Assign("=", ast.Ident("caught"), ast.Ident("e"))))),
			nil,
		),
	)
	s.CreateThreadForSrc(root)
	runToCompletion(t, s)

	caught := lookupGlobal(t, h, "caught")
	if str, ok := caught.(value.String); !ok || string(str) != "boom" {
		t.Errorf("expected caught value %q, got %v", "boom", caught)
	}
}

// TestFinallyRunsRegardlessOfCompletionKind covers the three ways a try
// block can complete: falling through normally, throwing (caught by an
// outer handler), and returning from inside a function — the finalizer
// must run in every case.
func TestFinallyRunsRegardlessOfCompletionKind(t *testing.T) {
	t.Run("normal_completion", func(t *testing.T) {
		h, s := newRuntime()
		root := ast.Program(
			ast.VarDecl(ast.Declarator("y", ast.Num(0))),
			ast.Try(
				ast.Block(ast.ExprStmt(ast.Assign("=", ast.Ident("y"), ast.Num(1)))),
				nil,
				ast.Block(ast.ExprStmt(ast.Assign("=", ast.Ident("y"), ast.Binary("+", ast.Ident("y"), ast.Num(10))))),
			),
		)
		s.CreateThreadForSrc(root)
		runToCompletion(t, s)
		wantNumber(t, lookupGlobal(t, h, "y"), 11)
	})

	t.Run("thrown_completion", func(t *testing.T) {
		h, s := newRuntime()
		root := ast.Program(
			ast.VarDecl(ast.Declarator("y", ast.Num(0))),
			ast.VarDecl(ast.Declarator("caught", ast.Undef())),
			ast.Try(
				ast.Block(ast.Try(
					ast.Block(ast.Throw(ast.Str("e"))),
					nil,
					ast.Block(ast.ExprStmt(ast.Assign("=", ast.Ident("y"), ast.Num(2)))),
				)),
				ast.Catch("e2", ast.Block(ast.ExprStmt(ast.Assign("=", ast.Ident("caught"), ast.Ident("e2"))))),
				nil,
			),
		)
		s.CreateThreadForSrc(root)
		runToCompletion(t, s)
		wantNumber(t, lookupGlobal(t, h, "y"), 2)
		wantString(t, lookupGlobal(t, h, "caught"), "e")
	})

	t.Run("return_completion", func(t *testing.T) {
		h, s := newRuntime()
		f := ast.FuncDecl("f", nil, ast.Block(
			ast.Try(
				ast.Block(ast.Return(ast.Num(1))),
				nil,
				ast.Block(ast.ExprStmt(ast.Assign("=", ast.Ident("y"), ast.Num(3)))),
			),
		))
		root := ast.Program(
			ast.VarDecl(ast.Declarator("y", ast.Num(0))),
			f,
			ast.VarDecl(ast.Declarator("r", ast.Call(ast.Ident("f")))),
		)
		s.CreateThreadForSrc(root)
		runToCompletion(t, s)
		wantNumber(t, lookupGlobal(t, h, "y"), 3)
		wantNumber(t, lookupGlobal(t, h, "r"), 1)
	})
}

// TestForInCompleteness checks that for-in visits every own-enumerable key
// along the prototype chain exactly once, own keys before inherited ones.
func TestForInCompleteness(t *testing.T) {
	h, s := newRuntime()
	root := ast.Program(
		ast.VarDecl(ast.Declarator("proto", ast.ObjectLit(ast.Prop(ast.Ident("a"), ast.Num(1))))),
		ast.VarDecl(ast.Declarator("o", ast.Call(ast.Dot(ast.Ident("Object"), "create"), ast.Ident("proto")))),
		ast.ExprStmt(ast.Assign("=", ast.Dot(ast.Ident("o"), "b"), ast.Num(2))),
		ast.VarDecl(ast.Declarator("keys", ast.ArrayLit())),
		ast.ForIn(
			ast.VarDecl(ast.Declarator("k", nil)),
			ast.Ident("o"),
			ast.Block(ast.ExprStmt(ast.Call(ast.Dot(ast.Ident("keys"), "push"), ast.Ident("k")))),
		),
		ast.VarDecl(ast.Declarator("result", ast.Call(ast.Dot(ast.Ident("keys"), "join"), ast.Str(",")))),
	)
	s.CreateThreadForSrc(root)
	runToCompletion(t, s)

	wantString(t, lookupGlobal(t, h, "result"), "b,a")
}
