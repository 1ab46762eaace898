package interp

import (
	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/value"
)

func init() {
	register(ast.KindProgram, handleBody)
	register(ast.KindEvalProgram, handleBody)
	register(ast.KindBlockStatement, handleBody)
	register(ast.KindExpressionStatement, handleExprStmt)
	register(ast.KindEmptyStatement, handleEmpty)
	register(ast.KindVariableDeclaration, handleVarDecl)
	register(ast.KindFunctionDeclaration, handleFunctionDecl)
	register(ast.KindIfStatement, handleIf)
	register(ast.KindReturnStatement, handleReturn)
	register(ast.KindThrowStatement, handleThrow)
	register(ast.KindBreakStatement, handleBreak)
	register(ast.KindContinueStatement, handleContinue)
	register(ast.KindLabeledStatement, handleLabeled)
}

// handleBody drives Program/EvalProgram/BlockStatement: run each statement
// in order, in this frame's own scope (the enclosing function/global scope;
// a BlockStatement gets no scope of its own, since this language has no
// block-scoped declarations beyond what scope population already hoisted).
func handleBody(s *Stepper, ps *programStack, f *Frame) {
	if f.Index < len(f.Node.Body) {
		s.pushRole(ps, f, RoleStmt, f.Index, f.Node.Body[f.Index], f.Scope)
		return
	}
	s.completeTop(ps, value.Undef)
}

func handleExprStmt(s *Stepper, ps *programStack, f *Frame) {
	if !f.DoneRight {
		s.pushRole(ps, f, RoleRight, 0, f.Node.Right, f.Scope)
		return
	}
	s.completeTop(ps, f.RightVal)
}

func handleEmpty(s *Stepper, ps *programStack, f *Frame) {
	s.completeTop(ps, value.Undef)
}

func handleVarDecl(s *Stepper, ps *programStack, f *Frame) {
	if f.Index >= len(f.Node.Declarations) {
		s.completeTop(ps, value.Undef)
		return
	}
	d := f.Node.Declarations[f.Index]
	if d.Init == nil {
		if !f.Scope.HasOwn(d.ID_.Name) {
			f.Scope.Declare(d.ID_.Name, value.Undef, false)
		}
		f.Index++
		return
	}
	if !f.DoneLeft {
		s.pushRole(ps, f, RoleLeft, f.Index, d.Init, f.Scope)
		return
	}
	f.Scope.Declare(d.ID_.Name, f.LeftVal, false)
	f.DoneLeft = false
	f.Index++
}

func handleFunctionDecl(s *Stepper, ps *programStack, f *Frame) {
	// Already bound to its closure during scope population; a
	// FunctionDeclaration statement itself is a no-op at execution time.
	s.completeTop(ps, value.Undef)
}

func handleIf(s *Stepper, ps *programStack, f *Frame) {
	if !f.DoneTest {
		s.pushRole(ps, f, RoleTest, 0, f.Node.Test, f.Scope)
		return
	}
	if !f.DoneExec {
		f.DoneExec = true
		if value.ToBoolean(f.TestVal) {
			s.pushRole(ps, f, RoleRight, 0, f.Node.Consequent, f.Scope)
			return
		}
		if f.Node.Alternate != nil {
			s.pushRole(ps, f, RoleRight, 0, f.Node.Alternate, f.Scope)
			return
		}
	}
	s.completeTop(ps, value.Undef)
}

func handleReturn(s *Stepper, ps *programStack, f *Frame) {
	if f.Node.Right != nil && !f.DoneRight {
		s.pushRole(ps, f, RoleRight, 0, f.Node.Right, f.Scope)
		return
	}
	ps.pending = &unwind{kind: unwindReturn, value: f.RightVal}
}

func handleThrow(s *Stepper, ps *programStack, f *Frame) {
	if !f.DoneRight {
		s.pushRole(ps, f, RoleRight, 0, f.Node.Right, f.Scope)
		return
	}
	s.throwValue(ps, f.RightVal)
}

func handleBreak(s *Stepper, ps *programStack, f *Frame) {
	ps.pending = &unwind{kind: unwindBreak, label: f.Node.Name}
}

func handleContinue(s *Stepper, ps *programStack, f *Frame) {
	ps.pending = &unwind{kind: unwindContinue, label: f.Node.Name}
}

func handleLabeled(s *Stepper, ps *programStack, f *Frame) {
	if !f.DoneExec {
		f.DoneExec = true
		child := newFrame(f.Node.Consequent, f.Scope)
		child.Label = f.Node.Name
		f.PendingRole = RoleRight
		ps.frames = append(ps.frames, child)
		return
	}
	s.completeTop(ps, value.Undef)
}
