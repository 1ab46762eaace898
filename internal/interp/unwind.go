package interp

import "github.com/Net-Set/CodeCity/internal/value"

// unwindKind distinguishes the four non-local control transfers that pop
// frames rather than evaluate them: break, continue, return, and throw.
type unwindKind int

const (
	unwindNone unwindKind = iota
	unwindBreak
	unwindContinue
	unwindReturn
	unwindThrow
)

// unwind is an in-flight non-local control transfer. The stepper pops one
// frame per Step() call while it is set, consulting each popped frame's
// kind to decide whether that frame consumes it (a matching loop/switch
// for break, a matching loop for continue, the nearest call/new frame for
// return, the nearest try frame for throw).
type unwind struct {
	kind  unwindKind
	label string // "" for an unlabeled break/continue
	value value.Value
}
