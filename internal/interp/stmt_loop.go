package interp

import (
	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/value"
)

func init() {
	register(ast.KindWhileStatement, handleWhile)
	register(ast.KindDoWhileStatement, handleDoWhile)
	register(ast.KindForStatement, handleFor)
	register(ast.KindForInStatement, handleForIn)
}

// Loop frames drive their iteration with an explicit phase counter in N,
// rather than a handful of named flags, since the phase sequence differs
// enough between while/do-while/for/for-in that a shared flag vocabulary
// would be more confusing than a phase number local to each handler.

func handleWhile(s *Stepper, ps *programStack, f *Frame) {
	switch f.N {
	case 0:
		if !f.DoneTest {
			s.pushRole(ps, f, RoleTest, 0, f.Node.Test, f.Scope)
			return
		}
		f.N = 1
	case 1:
		if !value.ToBoolean(f.TestVal) {
			s.completeTop(ps, value.Undef)
			return
		}
		f.N = 2
	case 2:
		s.pushRole(ps, f, RoleRight, 0, f.Node.Consequent, f.Scope)
		f.N = 3
	case 3:
		f.DoneTest = false
		f.N = 0
	}
}

func handleDoWhile(s *Stepper, ps *programStack, f *Frame) {
	switch f.N {
	case 0:
		s.pushRole(ps, f, RoleRight, 0, f.Node.Consequent, f.Scope)
		f.N = 1
	case 1:
		if !f.DoneTest {
			s.pushRole(ps, f, RoleTest, 0, f.Node.Test, f.Scope)
			return
		}
		f.N = 2
	case 2:
		if value.ToBoolean(f.TestVal) {
			f.DoneTest = false
			f.N = 0
		} else {
			s.completeTop(ps, value.Undef)
		}
	}
}

func handleFor(s *Stepper, ps *programStack, f *Frame) {
	switch f.N {
	case 0:
		if f.Node.Init != nil {
			s.pushRole(ps, f, RoleInit, 0, f.Node.Init, f.Scope)
			f.N = 1
			return
		}
		f.N = 1
	case 1:
		if f.Node.Test == nil {
			f.TestVal = value.True
			f.N = 2
			return
		}
		if !f.DoneTest {
			s.pushRole(ps, f, RoleTest, 0, f.Node.Test, f.Scope)
			return
		}
		f.N = 2
	case 2:
		if !value.ToBoolean(f.TestVal) {
			s.completeTop(ps, value.Undef)
			return
		}
		f.N = 3
	case 3:
		s.pushRole(ps, f, RoleRight, 0, f.Node.Consequent, f.Scope)
		f.N = 4
	case 4:
		if f.Node.Update != nil {
			s.pushRole(ps, f, RoleUpdate, 0, f.Node.Update, f.Scope)
			f.N = 5
			return
		}
		f.N = 5
	case 5:
		f.DoneTest = false
		f.N = 1
	}
}

func forInTargetName(left *ast.Node) string {
	if left.Kind == ast.KindVariableDeclaration {
		return left.Declarations[0].ID_.Name
	}
	return left.Name
}

func handleForIn(s *Stepper, ps *programStack, f *Frame) {
	switch f.N {
	case 0:
		if !f.DoneObject {
			s.pushRole(ps, f, RoleObject, 0, f.Node.Object, f.Scope)
			return
		}
		f.ForInKeys = s.Heap.EnumerateKeys(f.ObjectVal)
		f.ForInIndex = 0
		f.N = 1
	case 1:
		if f.ForInIndex >= len(f.ForInKeys) {
			s.completeTop(ps, value.Undef)
			return
		}
		name := forInTargetName(f.Node.Left)
		if f.Node.Left.Kind == ast.KindVariableDeclaration && !f.Scope.HasOwn(name) {
			f.Scope.Declare(name, value.Undef, false)
		}
		key := f.ForInKeys[f.ForInIndex]
		ref := &Reference{IsScope: true, Scope: f.Scope, Name: name}
		if err := s.writeRef(ref, value.String(key)); err != nil {
			s.throwErr(ps, err)
			return
		}
		f.N = 2
	case 2:
		s.pushRole(ps, f, RoleRight, 0, f.Node.Consequent, f.Scope)
		f.N = 3
	case 3:
		f.ForInIndex++
		f.N = 1
	}
}

// resetLoopIteration implements the `continue` target for each loop kind:
// for-statements resume at the update expression, while/for-in resume at
// the next test/key, and do-while resumes at its post-body test.
func resetLoopIteration(f *Frame) {
	switch f.Node.Kind {
	case ast.KindForStatement:
		f.N = 4
	case ast.KindWhileStatement:
		f.N = 0
		f.DoneTest = false
	case ast.KindDoWhileStatement:
		f.N = 1
		f.DoneTest = false
	case ast.KindForInStatement:
		f.N = 3
	}
}
