package interp

import (
	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/value"
)

func init() {
	register(ast.KindCallExpression, handleCallOrNew)
	register(ast.KindNewExpression, handleCallOrNew)
	register(ast.KindFunctionExpression, handleFunctionExpr)
}

func handleFunctionExpr(s *Stepper, ps *programStack, f *Frame) {
	fn := NewInterpretedFunction(s.Heap, f.Node, f.Scope)
	s.completeTop(ps, fn)
}

func handleCallOrNew(s *Stepper, ps *programStack, f *Frame) {
	isNew := f.Node.Kind == ast.KindNewExpression
	f.IsNew = isNew

	if !f.DoneCallee {
		s.pushRole(ps, f, RoleCalleeRef, 0, f.Node.Callee, f.Scope)
		return
	}
	if f.Index < len(f.Node.Arguments) {
		s.pushRole(ps, f, RoleArg, f.Index, f.Node.Arguments[f.Index], f.Scope)
		f.Index++
		return
	}
	if f.CallSetupDone {
		// The body frame has delivered its result into f.Value (see
		// beginCall's FuncInterpreted case); complete this frame with it,
		// substituting the constructed `this` for a `new` call whose body
		// didn't itself return an object.
		result := f.Value
		if f.IsNew {
			if _, isObj := result.(*value.Object); !isObj {
				result = f.Constructed
			}
		}
		s.completeTop(ps, result)
		return
	}

	var this value.Value = value.Undef
	if f.Ref != nil && !f.Ref.IsScope {
		this = f.Ref.Object
	}
	s.beginCall(ps, f, f.Callee, this, f.ArgVals, isNew)
}
