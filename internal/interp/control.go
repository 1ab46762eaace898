package interp

import (
	"fmt"

	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

func init() {
	register(ast.KindTryStatement, handleTry)
}

// handleTry drives the non-exceptional path of a try statement: run the
// block, then (if present and not already run by interceptTry's escape
// path) run the finalizer, then either resume a stashed escape or complete
// normally. The exceptional path — a throw caught by the handler, or any
// escape delayed by a pending finalizer — is handled by interceptTry before
// dispatch ever reaches here.
func handleTry(s *Stepper, ps *programStack, f *Frame) {
	switch f.N {
	case 0:
		f.N = 1
		s.pushRole(ps, f, RoleDiscard, 0, f.Node.Block, f.Scope)
	case 1:
		if f.Node.Finalizer != nil && !f.DoneFinally {
			f.DoneFinally = true
			f.N = 2
			s.pushRole(ps, f, RoleDiscard, 0, f.Node.Finalizer, f.Scope)
			return
		}
		s.completeTop(ps, value.Undef)
	case 2:
		if f.FinallyPend != nil {
			pend := f.FinallyPend
			f.FinallyPend = nil
			discardTop(ps)
			ps.pending = pend
			return
		}
		s.completeTop(ps, value.Undef)
	}
}

// interceptTry is consulted by unwindOneFrame whenever the frame an
// in-flight break/continue/return/throw has just reached is a try
// statement. It returns true if the try statement absorbs or delays the
// escape for this step (catching a throw into its handler, or stashing any
// kind of escape while its finalizer runs), false if the try statement has
// nothing left to do and should simply be discarded like any other frame.
func (s *Stepper) interceptTry(ps *programStack, f *Frame, u unwind) bool {
	if u.kind == unwindThrow && f.Node.Handler != nil && !f.DoneHandler {
		f.DoneHandler = true
		ps.pending = nil
		catchScope := heap.NewScope(f.Scope)
		if f.Node.Handler.Param != nil {
			catchScope.Declare(f.Node.Handler.Param.Name, u.value, false)
		}
		f.CatchScope = catchScope
		f.N = 1
		child := newFrame(f.Node.Handler.Block, catchScope)
		f.PendingRole = RoleDiscard
		ps.frames = append(ps.frames, child)
		return true
	}
	if f.Node.Finalizer != nil && !f.DoneFinally {
		f.DoneFinally = true
		f.FinallyPend = &u
		ps.pending = nil
		f.N = 2
		child := newFrame(f.Node.Finalizer, f.Scope)
		f.PendingRole = RoleDiscard
		ps.frames = append(ps.frames, child)
		return true
	}
	return false
}

// unwindOneFrame advances an in-flight break/continue/return/throw by
// exactly one frame: the current top frame either consumes the escape, is
// given a chance to delay it (try statements, via interceptTry), or is
// discarded so the escape keeps propagating toward its nearest enclosing
// loop, switch, call boundary, or try handler.
func (s *Stepper) unwindOneFrame(ps *programStack) {
	u := ps.pending
	f := ps.frames[len(ps.frames)-1]

	if f.Node.Kind == ast.KindTryStatement {
		if s.interceptTry(ps, f, *u) {
			return
		}
	}

	switch u.kind {
	case unwindBreak:
		if u.label == "" {
			if isLoopOrSwitch(f.Node.Kind) {
				ps.pending = nil
				s.completeTop(ps, value.Undef)
				return
			}
		} else if f.Label == u.label {
			ps.pending = nil
			s.completeTop(ps, value.Undef)
			return
		}
	case unwindContinue:
		if isLoop(f.Node.Kind) && (u.label == "" || f.Label == u.label) {
			ps.pending = nil
			resetLoopIteration(f)
			return
		}
	case unwindReturn:
		if f.IsCallBody {
			ps.pending = nil
			s.popFrameDirect(ps, f, u.value)
			return
		}
	}

	if (u.kind == unwindBreak || u.kind == unwindContinue) && f.IsCallBody {
		s.Fatal = fmt.Errorf("illegal %s across a function call boundary", unwindKindName(u.kind))
		return
	}

	discardTop(ps)
	if len(ps.frames) == 0 {
		if u.kind == unwindThrow {
			s.Fatal = fmt.Errorf("uncaught exception: %s", value.ToString(value.NewCycleCtx(), u.value))
			ps.pending = nil
			return
		}
		ps.done = true
		ps.pending = nil
	}
}

func discardTop(ps *programStack) {
	ps.frames = ps.frames[:len(ps.frames)-1]
}

func unwindKindName(k unwindKind) string {
	switch k {
	case unwindBreak:
		return "break"
	case unwindContinue:
		return "continue"
	default:
		return "control transfer"
	}
}

func isLoop(k ast.Kind) bool {
	switch k {
	case ast.KindForStatement, ast.KindWhileStatement, ast.KindDoWhileStatement, ast.KindForInStatement:
		return true
	}
	return false
}

func isLoopOrSwitch(k ast.Kind) bool {
	return isLoop(k) || k == ast.KindSwitchStatement
}
