package interp

import (
	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

// Stepper is the persistent interpreter: a heap, a root Program frame, and
// zero or more additional top-level Program/EvalProgram frames appended by
// appendCode/createThreadForSrc, each tracked as its own stack so unrelated
// top-level fragments don't interleave their control flow.
type Stepper struct {
	Heap *heap.Heap

	// Stacks holds one explicit frame stack per top-level program fragment
	// still running. Index 0 is the root Program. step() advances the first
	// stack that is not yet done, so a later fragment runs only once every
	// earlier one has finished.
	Stacks []*programStack

	paused bool

	// Fatal carries an unrecoverable host-level error (a break/continue
	// crossing a CallExpression/NewExpression boundary, an invalid-program
	// case); once set, step() stops advancing.
	Fatal error

	// Hooks wires process-lifecycle and parser callbacks for host bindings
	// that need to reach outside the Stepper/Heap pair. Left nil when no
	// Supervisor is wired in (e.g. in package tests).
	Hooks *Hooks
}

type programStack struct {
	frames  []*Frame
	pending *unwind
	done    bool
}

// New creates a Stepper over an already-initialized Heap (host bindings
// installed) with no program loaded yet.
func New(h *heap.Heap) *Stepper {
	return &Stepper{Heap: h}
}

// CreateThreadForSrc is the startup-time variant: a parsed program fragment
// is pushed as a new Program frame during initialization, running in the
// Heap's global scope.
func (s *Stepper) CreateThreadForSrc(root *ast.Node) {
	PopulateScope(s.Heap, root, s.Heap.Global)
	ps := &programStack{frames: []*Frame{newFrame(root, s.Heap.Global)}}
	s.Stacks = append(s.Stacks, ps)
}

// AppendCode appends top-level statements to the root Program frame,
// re-opening it (marking it not-done) and re-running scope population over
// just the appended statements.
func (s *Stepper) AppendCode(stmts []*ast.Node) {
	if len(s.Stacks) == 0 {
		root := &ast.Node{Kind: ast.KindProgram, Body: stmts}
		s.CreateThreadForSrc(root)
		return
	}
	root := s.Stacks[0]
	// Find the root Program node (bottom frame, index 0) to append into and
	// to re-scope-populate.
	progFrame := root.frames[0]
	progFrame.Node.Body = append(progFrame.Node.Body, stmts...)
	for _, st := range stmts {
		PopulateScope(s.Heap, &ast.Node{Kind: ast.KindProgram, Body: []*ast.Node{st}}, progFrame.Scope)
	}
	root.done = false
	if len(root.frames) == 0 {
		root.frames = []*Frame{progFrame}
	}
}

// Pause requests that Run() stop at the next step boundary.
func (s *Stepper) Pause() { s.paused = true }

// Resume clears a previously requested pause.
func (s *Stepper) Resume() { s.paused = false }

// Step advances execution by one small unit: the top frame of the first
// not-done program stack either pushes a child frame, updates its own
// progress state, or pops and delivers its value into its parent. Returns
// false once every program stack has completed (or a fatal error halted
// execution).
func (s *Stepper) Step() bool {
	if s.Fatal != nil {
		return false
	}
	ps := s.activeStack()
	if ps == nil {
		return false
	}
	if len(ps.frames) == 0 {
		ps.done = true
		return s.activeStack() != nil
	}
	top := ps.frames[len(ps.frames)-1]
	if top.Paused {
		return true
	}

	if ps.pending != nil {
		s.unwindOneFrame(ps)
		return true
	}

	h := dispatch[top.Node.Kind]
	if h == nil {
		// Unhandled node kind: treat as a no-op producing undefined, rather
		// than silently looping forever.
		s.completeTop(ps, value.Undef)
		return true
	}
	h(s, ps, top)
	return true
}

func (s *Stepper) activeStack() *programStack {
	for _, ps := range s.Stacks {
		if !ps.done {
			return ps
		}
	}
	return nil
}

// Run repeatedly steps until either every program stack completes or the
// pause flag is observed between steps; returns true if it stopped because
// of a pause.
func (s *Stepper) Run() bool {
	for {
		if s.paused {
			return true
		}
		if !s.Step() {
			return false
		}
	}
}

func (s *Stepper) top(ps *programStack) *Frame {
	return ps.frames[len(ps.frames)-1]
}

func (s *Stepper) pushRole(ps *programStack, parent *Frame, role Role, idx int, node *ast.Node, scope *heap.Scope) {
	parent.PendingRole = role
	parent.PendingIdx = idx
	ps.frames = append(ps.frames, newFrame(node, scope))
}

// completeTop pops the top frame of ps and delivers its value (and, for
// component-mode roles, its reference) to the new top (the parent), or
// marks ps done if the popped frame was the last one.
func (s *Stepper) completeTop(ps *programStack, v value.Value) {
	n := len(ps.frames)
	popped := ps.frames[n-1]
	ps.frames = ps.frames[:n-1]
	if len(ps.frames) == 0 {
		ps.done = true
		return
	}
	parent := ps.frames[len(ps.frames)-1]
	switch parent.PendingRole {
	case RoleLeftRef:
		parent.Ref = popped.Ref
		parent.LeftVal = v
		parent.DoneLeft = true
	case RoleCalleeRef:
		parent.Ref = popped.Ref
		parent.Callee = v
		parent.DoneCallee = true
	default:
		s.deliver(parent, parent.PendingRole, parent.PendingIdx, v)
	}
	parent.PendingRole = RoleNone
}

func (s *Stepper) deliver(parent *Frame, role Role, idx int, v value.Value) {
	switch role {
	case RoleLeft:
		parent.LeftVal = v
		parent.DoneLeft = true
	case RoleRight:
		parent.RightVal = v
		parent.DoneRight = true
	case RoleTest:
		parent.TestVal = v
		parent.DoneTest = true
	case RoleCallee:
		parent.Callee = v
		parent.DoneCallee = true
	case RoleArg:
		for len(parent.ArgVals) <= idx {
			parent.ArgVals = append(parent.ArgVals, value.Undef)
		}
		parent.ArgVals[idx] = v
	case RoleElement:
		for len(parent.Elements) <= idx {
			parent.Elements = append(parent.Elements, value.Undef)
		}
		parent.Elements[idx] = v
	case RolePropKey:
		for len(parent.PropKeys) <= idx {
			parent.PropKeys = append(parent.PropKeys, "")
		}
		parent.PropKeys[idx] = value.ToString(value.NewCycleCtx(), v)
	case RolePropVal:
		for len(parent.PropVals) <= idx {
			parent.PropVals = append(parent.PropVals, value.Undef)
		}
		parent.PropVals[idx] = v
	case RoleObject:
		parent.ObjectVal = v
		parent.DoneObject = true
	case RoleProperty:
		parent.PropertyVal = v
	case RoleInit:
		parent.DoneInit = true
	case RoleUpdate:
		parent.DoneUpdate = true
	case RoleDiscriminant:
		parent.TestVal = v
		parent.DoneDiscriminant = true
	case RoleCaseTest:
		parent.TestVal = v
	case RoleStmt:
		parent.Index++
	case RoleHandlerResult:
		parent.Value = v
	case RoleDiscard:
		// intentionally ignored
	}
}

// throwValue begins a throw unwind with the given language-level error
// value, to be consumed by the nearest enclosing try frame.
func (s *Stepper) throwValue(ps *programStack, v value.Value) {
	ps.pending = &unwind{kind: unwindThrow, value: v}
}

func (s *Stepper) throwErr(ps *programStack, err error) {
	if je, ok := err.(*heap.JSError); ok {
		s.throwValue(ps, je.Value)
		return
	}
	s.Fatal = err
}
