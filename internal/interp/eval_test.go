package interp_test

import (
	"testing"

	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/interp"
)

// literalParser is an ast.Parser stand-in for eval()'s injected parser hook:
// it ignores the source text entirely and always hands back the same
// builder-constructed program, the same shortcut supervisor_test.go's
// stubParser takes for the same reason (no real grammar in this module).
type literalParser struct {
	root *ast.Node
}

func (p *literalParser) Parse(src string) (*ast.Node, error) {
	return p.root, nil
}

// TestEvalHoistsIntoCallerScope checks direct (non-strict) eval semantics:
// a var declared inside the evaluated string must leak into the scope the
// eval() call itself executed in, not a fresh closure of its own.
func TestEvalHoistsIntoCallerScope(t *testing.T) {
	h, s := newRuntime()
	s.Hooks = &interp.Hooks{Parser: &literalParser{
		root: ast.Program(ast.VarDecl(ast.Declarator("y", ast.Num(99)))),
	}}

	f := ast.FuncDecl("f", nil, ast.Block(
		ast.ExprStmt(ast.Call(ast.Ident("eval"), ast.Str("var y = 99;"))),
		ast.Return(ast.Ident("y")),
	))
	root := ast.Program(
		f,
		ast.VarDecl(ast.Declarator("result", ast.Call(ast.Ident("f")))),
	)
	s.CreateThreadForSrc(root)
	runToCompletion(t, s)

	wantNumber(t, lookupGlobal(t, h, "result"), 99)
	if _, ok := h.Global.Lookup("y"); ok {
		t.Error("eval's var declaration leaked past the calling function into the global scope")
	}
}

// TestEvalNonStringReturnsArgumentUnevaluated covers ES5 8.7's shortcut: a
// non-string argument is handed back as-is rather than parsed.
func TestEvalNonStringReturnsArgumentUnevaluated(t *testing.T) {
	h, s := newRuntime()
	root := ast.Program(
		ast.VarDecl(ast.Declarator("result", ast.Call(ast.Ident("eval"), ast.Num(42)))),
	)
	s.CreateThreadForSrc(root)
	runToCompletion(t, s)

	wantNumber(t, lookupGlobal(t, h, "result"), 42)
}

// TestEvalWithoutParserHookThrows checks that calling eval() on a Stepper
// with no parser wired in (package tests, or a Supervisor started without
// one) raises a catchable EvalError instead of panicking.
func TestEvalWithoutParserHookThrows(t *testing.T) {
	h, s := newRuntime()
	root := ast.Program(
		ast.VarDecl(ast.Declarator("caught", ast.Undef())),
		ast.Try(
			ast.Block(ast.ExprStmt(ast.Call(ast.Ident("eval"), ast.Str("1;")))),
			ast.Catch("e", ast.Block(ast.ExprStmt(
				ast.Assign("=", ast.Ident("caught"), ast.Dot(ast.Ident("e"), "name")),
			))),
			nil,
		),
	)
	s.CreateThreadForSrc(root)
	runToCompletion(t, s)

	wantString(t, lookupGlobal(t, h, "caught"), "EvalError")
}
