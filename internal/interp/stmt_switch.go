package interp

import (
	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/value"
)

func init() {
	register(ast.KindSwitchStatement, handleSwitch)
}

// SwitchStatement drives three phases via N: 0 evaluates the discriminant,
// 1 scans cases in source order for a strict-equal match (remembering the
// first `default:` case's index in DefaultIdx without running it early), and
// 2 executes statements from the matched case onward, falling through case
// boundaries exactly like the source language does, until a break unwind
// (handled in control.go) or the statement list runs out. ForInIndex, unused
// by a switch otherwise, tracks the statement-within-case cursor during
// phase 2.
func handleSwitch(s *Stepper, ps *programStack, f *Frame) {
	switch f.N {
	case 0:
		if !f.DoneDiscriminant {
			s.pushRole(ps, f, RoleDiscriminant, 0, f.Node.Discriminant, f.Scope)
			return
		}
		f.LeftVal = f.TestVal
		f.Index = 0
		f.DefaultIdx = -1
		f.N = 1
	case 1:
		if f.SwitchMatched {
			f.N = 2
			return
		}
		if f.Index >= len(f.Node.Cases) {
			if f.DefaultIdx >= 0 {
				f.Index = f.DefaultIdx
				f.SwitchMatched = true
				f.N = 2
				return
			}
			s.completeTop(ps, value.Undef)
			return
		}
		c := f.Node.Cases[f.Index]
		if c.Test == nil {
			if f.DefaultIdx < 0 {
				f.DefaultIdx = f.Index
			}
			f.Index++
			return
		}
		if !f.DoneTest {
			s.pushRole(ps, f, RoleCaseTest, 0, c.Test, f.Scope)
			return
		}
		f.DoneTest = false
		if value.StrictEquals(f.LeftVal, f.TestVal) {
			f.SwitchMatched = true
			f.N = 2
			return
		}
		f.Index++
	case 2:
		if f.Index >= len(f.Node.Cases) {
			s.completeTop(ps, value.Undef)
			return
		}
		c := f.Node.Cases[f.Index]
		if f.ForInIndex >= len(c.Body) {
			f.Index++
			f.ForInIndex = 0
			return
		}
		stmt := c.Body[f.ForInIndex]
		f.ForInIndex++
		s.pushRole(ps, f, RoleDiscard, 0, stmt, f.Scope)
	}
}
