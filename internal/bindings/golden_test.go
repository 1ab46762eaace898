package bindings

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/Net-Set/CodeCity/internal/ast"
)

// TestJSONRoundTrip exercises JSON.parse/JSON.stringify (gjson/sjson under
// the hood) as a golden snapshot, the same go-snaps pattern the interpreter
// scenario tests use for language conformance.
func TestJSONRoundTrip(t *testing.T) {
	h, s := newRuntime()
	root := program(
		ast.VarDecl(ast.Declarator("parsed", ast.Call(
			ast.Dot(ast.Ident("JSON"), "parse"),
			ast.Str(`{"a":1,"b":[1,2,3]}`),
		))),
		ast.ExprStmt(ast.Assign("=", ast.Dot(ast.Ident("parsed"), "b"),
			ast.Call(ast.Dot(ast.Dot(ast.Ident("parsed"), "b"), "concat"), ast.Num(4)))),
		ast.VarDecl(ast.Declarator("result", ast.Call(ast.Dot(ast.Ident("JSON"), "stringify"), ast.Ident("parsed")))),
	)
	s.CreateThreadForSrc(root)
	runToCompletion(t, s)

	result := lookupGlobal(t, h, "result")
	snaps.MatchSnapshot(t, "json_round_trip", fmt.Sprint(result))
}

// TestArrayIterationMethods covers map/filter/reduce, grounded on
// internal/heap/array.go's slice round-trip helpers.
func TestArrayIterationMethods(t *testing.T) {
	h, s := newRuntime()
	doubled := ast.FuncExpr("", []string{"n"}, ast.Block(ast.Return(ast.Binary("*", ast.Ident("n"), ast.Num(2)))))
	even := ast.FuncExpr("", []string{"n"}, ast.Block(ast.Return(ast.Binary("===", ast.Binary("%", ast.Ident("n"), ast.Num(2)), ast.Num(0)))))
	sum := ast.FuncExpr("", []string{"acc", "n"}, ast.Block(ast.Return(ast.Binary("+", ast.Ident("acc"), ast.Ident("n")))))

	root := program(
		ast.VarDecl(ast.Declarator("nums", ast.ArrayLit(ast.Num(1), ast.Num(2), ast.Num(3), ast.Num(4)))),
		ast.VarDecl(ast.Declarator("result", ast.Call(
			ast.Dot(ast.Call(ast.Dot(ast.Call(ast.Dot(ast.Ident("nums"), "map"), doubled), "filter"), even), "reduce"),
			sum, ast.Num(0),
		))),
	)
	s.CreateThreadForSrc(root)
	runToCompletion(t, s)

	result := lookupGlobal(t, h, "result")
	snaps.MatchSnapshot(t, "array_iteration_methods", fmt.Sprint(result))
}

// TestStringCaseConversion exercises toUpperCase/toLowerCase, which use
// golang.org/x/text/cases rather than Go's ASCII-only strings helpers.
func TestStringCaseConversion(t *testing.T) {
	h, s := newRuntime()
	root := program(
		ast.VarDecl(ast.Declarator("result", ast.Call(
			ast.Dot(ast.Call(ast.Dot(ast.Str("Hello World"), "toUpperCase")), "toLowerCase"),
		))),
	)
	s.CreateThreadForSrc(root)
	runToCompletion(t, s)

	result := lookupGlobal(t, h, "result")
	snaps.MatchSnapshot(t, "string_case_conversion", fmt.Sprint(result))
}
