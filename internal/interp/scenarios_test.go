package interp_test

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/Net-Set/CodeCity/internal/ast"
)

// TestLiteralScenarios exercises five of the six literal input/output pairs
// (the pause/snapshot/resume one lives in snapshot_scenario_test.go) as
// golden snapshots, the same go-snaps pattern a language-conformance suite
// runs one full program through the interpreter and snapshots its
// observable result.

func TestLiteralScenarios(t *testing.T) {
	t.Run("accumulating_for_loop", func(t *testing.T) {
		// var x = 0; for (var i = 0; i < 3; i++) x += i; x;
		h, s := newRuntime()
		root := ast.Program(
			ast.VarDecl(ast.Declarator("x", ast.Num(0))),
			ast.For(
				ast.VarDecl(ast.Declarator("i", ast.Num(0))),
				ast.Binary("<", ast.Ident("i"), ast.Num(3)),
				ast.Update("++", ast.Ident("i"), false),
				ast.Block(ast.ExprStmt(ast.Assign("+=", ast.Ident("x"), ast.Ident("i")))),
			),
			ast.ExprStmt(ast.Ident("x")),
		)
		s.CreateThreadForSrc(root)
		runToCompletion(t, s)

		x := lookupGlobal(t, h, "x")
		wantNumber(t, x, 3)
		snaps.MatchSnapshot(t, "accumulating_for_loop", fmt.Sprint(x))
	})

	t.Run("throw_caught_by_iife", func(t *testing.T) {
		// var result = (function(){ try { throw new RangeError("r"); }
		// catch(e) { return e.name + ":" + e.message; } })();
		h, s := newRuntime()
		body := ast.Block(
			ast.Try(
				ast.Block(ast.Throw(ast.New(ast.Ident("RangeError"), ast.Str("r")))),
				ast.Catch("e", ast.Block(ast.Return(
					ast.Binary("+",
						ast.Binary("+", ast.Dot(ast.Ident("e"), "name"), ast.Str(":")),
						ast.Dot(ast.Ident("e"), "message"),
					),
				))),
				nil,
			),
		)
		root := ast.Program(
			ast.VarDecl(ast.Declarator("result", ast.Call(ast.FuncExpr("", nil, body)))),
		)
		s.CreateThreadForSrc(root)
		runToCompletion(t, s)

		result := lookupGlobal(t, h, "result")
		wantString(t, result, "RangeError:r")
		snaps.MatchSnapshot(t, "throw_caught_by_iife", fmt.Sprint(result))
	})

	t.Run("array_mutate_then_join", func(t *testing.T) {
		// var a = [1,2,3]; a.push(4); a.length = 2; a.join(",");
		h, s := newRuntime()
		root := ast.Program(
			ast.VarDecl(ast.Declarator("a", ast.ArrayLit(ast.Num(1), ast.Num(2), ast.Num(3)))),
			ast.ExprStmt(ast.Call(ast.Dot(ast.Ident("a"), "push"), ast.Num(4))),
			ast.ExprStmt(ast.Assign("=", ast.Dot(ast.Ident("a"), "length"), ast.Num(2))),
			ast.VarDecl(ast.Declarator("result", ast.Call(ast.Dot(ast.Ident("a"), "join"), ast.Str(",")))),
		)
		s.CreateThreadForSrc(root)
		runToCompletion(t, s)

		result := lookupGlobal(t, h, "result")
		wantString(t, result, "1,2")
		snaps.MatchSnapshot(t, "array_mutate_then_join", fmt.Sprint(result))
	})

	t.Run("recursive_fibonacci", func(t *testing.T) {
		// function f(n){ return n<2?n:f(n-1)+f(n-2); } f(10);
		h, s := newRuntime()
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
		root := ast.Program(
			fib,
			ast.VarDecl(ast.Declarator("result", ast.Call(ast.Ident("f"), ast.Num(10)))),
		)
		s.CreateThreadForSrc(root)
		runToCompletion(t, s)

		result := lookupGlobal(t, h, "result")
		wantNumber(t, result, 55)
		snaps.MatchSnapshot(t, "recursive_fibonacci", fmt.Sprint(result))
	})

	t.Run("append_code_after_completion", func(t *testing.T) {
		// Resume scenario 1's finished program (x left at 3) by appending
		// "x = x + 10;" the way a live supervisor's appendCode extension
		// point would, then run it to completion: x observable as 13.
		h, s := newRuntime()
		root := ast.Program(
			ast.VarDecl(ast.Declarator("x", ast.Num(0))),
			ast.For(
				ast.VarDecl(ast.Declarator("i", ast.Num(0))),
				ast.Binary("<", ast.Ident("i"), ast.Num(3)),
				ast.Update("++", ast.Ident("i"), false),
				ast.Block(ast.ExprStmt(ast.Assign("+=", ast.Ident("x"), ast.Ident("i")))),
			),
		)
		s.CreateThreadForSrc(root)
		runToCompletion(t, s)
		wantNumber(t, lookupGlobal(t, h, "x"), 3)

		s.AppendCode([]*ast.Node{
			ast.ExprStmt(ast.Assign("=", ast.Ident("x"), ast.Binary("+", ast.Ident("x"), ast.Num(10)))),
		})
		runToCompletion(t, s)

		x := lookupGlobal(t, h, "x")
		wantNumber(t, x, 13)
		snaps.MatchSnapshot(t, "append_code_after_completion", fmt.Sprint(x))
	})
}
