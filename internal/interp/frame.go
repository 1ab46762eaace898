// Package interp implements the stepper: a tree-walking evaluator whose
// entire state — the call stack, each frame's partial progress, pending
// pauses — lives in plain Go data rather than the Go call stack, so it can
// be advanced one small unit at a time and captured as a snapshot between
// any two units.
package interp

import (
	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

// Role names which field of the parent frame a completing child's value
// gets delivered into.
type Role int

const (
	RoleNone Role = iota
	RoleLeft
	RoleRight
	RoleTest
	RoleCallee
	RoleArg
	RoleElement
	RolePropKey
	RolePropVal
	RoleObject
	RoleProperty
	RoleInit
	RoleUpdate
	RoleDiscriminant
	RoleCaseTest
	RoleStmt
	RoleHandlerResult
	RoleLeftRef   // like RoleLeft, but the child's Ref is captured too
	RoleCalleeRef // like RoleCallee, but the child's Ref is captured too (member-expression `this` binding)
	RoleDiscard   // child's value is not needed by the parent at all
)

// Reference is what an expression evaluated "as components" (the
// assignment left-hand side, a delete target, a for-in target) yields:
// either a scope binding or an object/key pair.
type Reference struct {
	IsScope bool
	Scope   *heap.Scope
	Name    string

	Object value.Value
	Key    string
}

// Frame is one entry of the explicit interpretation stack. Only the fields
// relevant to Node.Kind are meaningful for a given frame; this mirrors
// ast.Node's single tagged-variant design, for the same reason — a flat
// dispatch table over Kind rather than per-kind Go types.
type Frame struct {
	Node  *ast.Node
	Scope *heap.Scope

	// Which slot on this frame the currently-pushed child frame's result
	// will be delivered into, and at what index (arguments/elements/
	// properties/body statements).
	PendingRole Role
	PendingIdx  int

	// Progress flags/counters, named per the design note in the component
	// this package implements ("doneLeft, doneRight, doneCallee, doneArgs,
	// doneExec", "n", "index").
	DoneLeft, DoneRight, DoneTest, DoneCallee, DoneArgs, DoneExec         bool
	DoneInit, DoneUpdate, DoneObject, DoneBlock, DoneHandler, DoneFinally bool
	DoneDiscriminant                                                      bool
	N, Index                                                              int

	// Evaluated sub-results.
	LeftVal, RightVal, TestVal, ObjectVal, PropertyVal value.Value
	Callee                                             value.Value
	ThisVal                                            value.Value
	ArgVals                                            []value.Value
	Elements                                           []value.Value
	PropKeys                                           []string
	PropVals                                           []value.Value

	// This frame's own contribution once fully evaluated; read by the
	// parent via the Role delivery mechanism.
	Value value.Value

	// Component-mode result (assignment targets, delete, for-in, typeof).
	Ref *Reference

	// Call/construct bookkeeping.
	IsNew       bool
	Constructed *value.Object
	IsCallBody  bool // true for the frame pushed on a function's body by beginCall

	// for-in bookkeeping. ForInIndex doubles as the statement-within-case
	// cursor for SwitchStatement's execution phase.
	ForInKeys  []string
	ForInIndex int

	// try/catch/finally bookkeeping.
	CatchScope  *heap.Scope
	FinallyPend *unwind // unwind that was in flight when the finalizer started

	// switch bookkeeping.
	SwitchMatched bool
	DefaultIdx    int

	// Function-call setup already performed (interpreted calls push a
	// second frame on the body; this flag distinguishes "about to call"
	// from "body pushed, awaiting return").
	CallSetupDone bool

	// typeof suppresses ReferenceError on unresolved identifiers.
	SuppressRef bool

	// Async-native pause.
	Paused bool

	// Label carried by a LabeledStatement, consumed by break/continue
	// matching against the frame wrapping the labeled construct.
	Label string

	Done bool
}

func newFrame(n *ast.Node, scope *heap.Scope) *Frame {
	return &Frame{Node: n, Scope: scope, DefaultIdx: -1}
}
