package interp

import (
	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

// PopulateScope runs the pre-pass required before a Program or function
// body executes: every var declaration is declared (as undefined, unless
// already bound) and every function declaration is bound to its closure,
// in the target scope, without descending into nested function bodies or
// expression statements.
func PopulateScope(h *heap.Heap, root *ast.Node, scope *heap.Scope) {
	for _, stmt := range root.Body {
		populateStmt(h, stmt, scope)
	}
}

func populateStmt(h *heap.Heap, n *ast.Node, scope *heap.Scope) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.KindVariableDeclaration:
		for _, d := range n.Declarations {
			if !scope.HasOwn(d.ID_.Name) {
				scope.Declare(d.ID_.Name, value.Undef, false)
			}
		}
	case ast.KindFunctionDeclaration:
		fn := NewInterpretedFunction(h, n, scope)
		scope.Declare(n.ID_.Name, fn, false)
	case ast.KindBlockStatement:
		for _, s := range n.Body {
			populateStmt(h, s, scope)
		}
	case ast.KindIfStatement:
		populateStmt(h, n.Consequent, scope)
		populateStmt(h, n.Alternate, scope)
	case ast.KindForStatement:
		populateStmt(h, n.Init, scope)
		populateStmt(h, n.Consequent, scope)
	case ast.KindForInStatement:
		populateStmt(h, n.Left, scope)
		populateStmt(h, n.Consequent, scope)
	case ast.KindWhileStatement, ast.KindDoWhileStatement:
		populateStmt(h, n.Consequent, scope)
	case ast.KindTryStatement:
		populateStmt(h, n.Block, scope)
		if n.Handler != nil {
			populateStmt(h, n.Handler.Block, scope)
		}
		populateStmt(h, n.Finalizer, scope)
	case ast.KindSwitchStatement:
		for _, c := range n.Cases {
			for _, s := range c.Body {
				populateStmt(h, s, scope)
			}
		}
	case ast.KindLabeledStatement:
		populateStmt(h, n.Consequent, scope)
	}
	// Expression statements, return/throw/break/continue carry no hoistable
	// declarations of their own, and function *expressions* are not
	// function declarations, so neither is descended into here.
}
