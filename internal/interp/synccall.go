package interp

import (
	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/value"
)

// CallSync invokes callee with the given this/args to completion before
// returning, for host bindings (Function.prototype.call/apply/bind, array
// iteration callbacks, sort comparators, replace callbacks, ...) that need a JS
// function's result in hand before their own native call can return. It
// runs a private program stack through the ordinary dispatch/unwind
// machinery rather than recursing on the Go stack, so an interpreted
// callee's own nested calls, loops, and try/catch all behave exactly as
// they would at the top level. It cannot call through an async-native
// boundary — callback-driven pauses have no synchronous result to return,
// so that case raises a TypeError instead of blocking the stepper.
func (s *Stepper) CallSync(callee, this value.Value, args []value.Value) (value.Value, error) {
	fn, ok := callee.(*value.Object)
	if !ok || fn.Tag != value.TagFunction || fn.Function == nil {
		return nil, s.Heap.Throw("TypeError", "value is not a function")
	}

	sentinel := newFrame(&ast.Node{Kind: ast.KindEvalProgram}, s.Heap.Global)
	sentinel.PendingRole = RoleHandlerResult
	harness := newFrame(&ast.Node{Kind: ast.KindCallExpression}, s.Heap.Global)
	harness.DoneCallee = true

	ps := &programStack{frames: []*Frame{sentinel, harness}}
	s.beginCall(ps, harness, callee, this, args, false)

	for {
		if s.Fatal != nil {
			err := s.Fatal
			s.Fatal = nil
			return nil, err
		}
		if len(ps.frames) == 1 && ps.frames[0] == sentinel && sentinel.PendingRole == RoleNone {
			return sentinel.Value, nil
		}
		if len(ps.frames) == 0 {
			return value.Undef, nil
		}
		top := ps.frames[len(ps.frames)-1]
		if top.Paused {
			return nil, s.Heap.Throw("TypeError", "cannot synchronously call an asynchronous function")
		}
		if ps.pending != nil {
			s.unwindOneFrame(ps)
			continue
		}
		h := dispatch[top.Node.Kind]
		if h == nil {
			s.completeTop(ps, value.Undef)
			continue
		}
		h(s, ps, top)
	}
}
