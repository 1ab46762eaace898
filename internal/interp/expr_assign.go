package interp

import (
	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/value"
)

func init() {
	register(ast.KindAssignmentExpression, handleAssign)
}

// readRef reads the current value through a reference produced by
// component-mode evaluation of an identifier or member expression.
func (s *Stepper) readRef(ref *Reference) (value.Value, error) {
	if ref == nil {
		return value.Undef, nil
	}
	if ref.IsScope {
		v, ok := ref.Scope.Lookup(ref.Name)
		if !ok {
			return nil, s.Heap.Throw("ReferenceError", ref.Name+" is not defined")
		}
		return v, nil
	}
	return s.Heap.Get(ref.Object, ref.Key)
}

// writeRef writes v through a reference, declaring a new global binding if
// the identifier is unbound anywhere in the scope chain (matching
// non-strict-mode implicit global creation), or failing with
// TypeError if the scope-chain walk hit a read-only binding.
func (s *Stepper) writeRef(ref *Reference, v value.Value) error {
	if ref == nil {
		return nil
	}
	if ref.IsScope {
		if ref.Scope.Assign(ref.Name, v) {
			return nil
		}
		if found, readOnly := ref.Scope.HasBinding(ref.Name); found && readOnly {
			return s.Heap.Throw("TypeError", "assignment to constant variable "+ref.Name)
		}
		s.Heap.Global.Declare(ref.Name, v, false)
		return nil
	}
	return s.Heap.Set(ref.Object, ref.Key, v)
}

func handleAssign(s *Stepper, ps *programStack, f *Frame) {
	if !f.DoneLeft {
		s.pushRole(ps, f, RoleLeftRef, 0, f.Node.Left, f.Scope)
		return
	}
	if !f.DoneRight {
		s.pushRole(ps, f, RoleRight, 0, f.Node.Right, f.Scope)
		return
	}
	op := f.Node.Operator
	var result value.Value
	if op == "=" {
		result = f.RightVal
	} else {
		cur, err := s.readRef(f.Ref)
		if err != nil {
			s.throwErr(ps, err)
			return
		}
		binOp := op[:len(op)-1] // "+=" -> "+"
		v, err := evalBinary(value.NewCycleCtx(), binOp, cur, f.RightVal)
		if err != nil {
			s.throwErr(ps, err)
			return
		}
		result = v
	}
	if err := s.writeRef(f.Ref, result); err != nil {
		s.throwErr(ps, err)
		return
	}
	s.completeTop(ps, result)
}
