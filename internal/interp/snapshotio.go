package interp

import "github.com/Net-Set/CodeCity/internal/value"

// PendingUnwind is the exported mirror of unwind, for a snapshot encoder/
// decoder living outside this package to read and rebuild a program stack's
// in-flight break/continue/return/throw without this package exposing its
// internal enum or the programStack type itself.
type PendingUnwind struct {
	Kind  string // "break", "continue", "return", or "throw"
	Label string
	Value value.Value
}

func exportUnwind(u *unwind) *PendingUnwind {
	if u == nil {
		return nil
	}
	return &PendingUnwind{Kind: unwindKindTag(u.kind), Label: u.label, Value: u.value}
}

func importUnwind(p *PendingUnwind) *unwind {
	if p == nil {
		return nil
	}
	return &unwind{kind: unwindKindFromTag(p.Kind), label: p.Label, value: p.Value}
}

func unwindKindTag(k unwindKind) string {
	switch k {
	case unwindBreak:
		return "break"
	case unwindContinue:
		return "continue"
	case unwindReturn:
		return "return"
	case unwindThrow:
		return "throw"
	default:
		return ""
	}
}

func unwindKindFromTag(tag string) unwindKind {
	switch tag {
	case "break":
		return unwindBreak
	case "continue":
		return unwindContinue
	case "return":
		return unwindReturn
	case "throw":
		return unwindThrow
	default:
		return unwindNone
	}
}

// StackSnapshot is the exported view of one programStack: its frame list,
// any in-flight unwind, and whether it has finished. A snapshot encoder
// walks Frames directly (Frame's fields are already exported); a decoder
// rebuilds the Stepper's stacks wholesale via SetStacks.
type StackSnapshot struct {
	Frames  []*Frame
	Pending *PendingUnwind
	Done    bool
}

// NumStacks returns how many top-level program fragments the Stepper is
// tracking, running or finished.
func (s *Stepper) NumStacks() int { return len(s.Stacks) }

// StackAt exports the i-th program stack's state for serialization.
func (s *Stepper) StackAt(i int) StackSnapshot {
	ps := s.Stacks[i]
	return StackSnapshot{Frames: ps.frames, Pending: exportUnwind(ps.pending), Done: ps.done}
}

// SetStacks replaces the Stepper's entire stack list, reconstructing each
// programStack from a decoded snapshot. Used only by the snapshot decoder,
// on a Stepper that has not run any code of its own yet.
func (s *Stepper) SetStacks(snaps []StackSnapshot) {
	stacks := make([]*programStack, len(snaps))
	for i, snap := range snaps {
		stacks[i] = &programStack{
			frames:  snap.Frames,
			pending: importUnwind(snap.Pending),
			done:    snap.Done,
		}
	}
	s.Stacks = stacks
}

// ExportFinallyPend exposes a Frame's stashed pending-escape (set while a
// try statement's finalizer runs) to the snapshot encoder, which otherwise
// has no way to name the unexported unwind type FinallyPend holds.
func (f *Frame) ExportFinallyPend() *PendingUnwind { return exportUnwind(f.FinallyPend) }

// SetFinallyPend is ExportFinallyPend's inverse, used by the snapshot
// decoder to restore a Frame paused mid-finally.
func (f *Frame) SetFinallyPend(p *PendingUnwind) { f.FinallyPend = importUnwind(p) }
