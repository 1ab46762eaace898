package interp

import (
	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

// CallContext is the ctx argument handed to every NativeImpl/AsyncNativeImpl:
// it gives host bindings access to the Heap and the owning Stepper without
// internal/value needing to import this package.
type CallContext struct {
	Heap    *heap.Heap
	Stepper *Stepper
}

// Hooks exposes the Stepper's process-lifecycle and parser callbacks to
// host bindings. Nil fields mean that extension point isn't wired (e.g. a
// Stepper built for a test without a Supervisor behind it).
func (c *CallContext) Hooks() *Hooks {
	if c.Stepper == nil {
		return nil
	}
	return c.Stepper.Hooks
}

var nextNativeTag int64

// NewInterpretedFunction builds a Function-tagged object backed by a
// FunctionDeclaration/FunctionExpression node, capturing scope as its
// closure.
func NewInterpretedFunction(h *heap.Heap, n *ast.Node, scope *heap.Scope) *value.Object {
	o := value.NewObject(h.FunctionProto)
	o.Tag = value.TagFunction
	names := make([]string, len(n.Params))
	for i, p := range n.Params {
		names[i] = p.Name
	}
	name := ""
	if n.ID_ != nil {
		name = n.ID_.Name
	}
	o.Function = &value.FunctionSlot{
		Kind:       value.FuncInterpreted,
		NodeID:     int64(n.ID),
		Node:       n,
		ParentEnv:  scope,
		Name:       name,
		ParamNames: names,
	}
	proto := value.NewObject(h.ObjectProto)
	proto.PutOwn("constructor", o, value.AttrWritable|value.AttrConfigurable)
	o.PutOwn("prototype", proto, value.AttrWritable)
	o.PutOwn("length", value.Number(float64(len(names))), 0)
	o.PutOwn("name", value.String(name), 0)
	return o
}

// NewNativeFunction wraps a host Go function as a callable Function-tagged
// object, assigning it the next monotonically-increasing stable tag.
func NewNativeFunction(h *heap.Heap, name string, arity int, impl value.NativeImpl) *value.Object {
	o := value.NewObject(h.FunctionProto)
	o.Tag = value.TagFunction
	nextNativeTag++
	o.Function = &value.FunctionSlot{
		Kind:      value.FuncNative,
		Name:      name,
		Arity:     arity,
		Native:    impl,
		NativeTag: nextNativeTag,
	}
	o.PutOwn("length", value.Number(float64(arity)), 0)
	o.PutOwn("name", value.String(name), 0)
	return o
}

// NewAsyncNativeFunction is NewNativeFunction's pause/resume-capable
// counterpart.
func NewAsyncNativeFunction(h *heap.Heap, name string, arity int, impl value.AsyncNativeImpl) *value.Object {
	o := value.NewObject(h.FunctionProto)
	o.Tag = value.TagFunction
	nextNativeTag++
	o.Function = &value.FunctionSlot{
		Kind:        value.FuncAsyncNative,
		Name:        name,
		Arity:       arity,
		AsyncNative: impl,
		NativeTag:   nextNativeTag,
	}
	o.PutOwn("length", value.Number(float64(arity)), 0)
	o.PutOwn("name", value.String(name), 0)
	return o
}

// NewEvalFunction builds the FuncEval-tagged global eval() function. It
// carries no Native/AsyncNative body of its own: beginCall special-cases
// value.FuncEval to parse its string argument through the Stepper's parser
// hook and run the result as a synthetic EvalProgram frame in the calling
// scope, rather than invoking a Go callback.
func NewEvalFunction(h *heap.Heap) *value.Object {
	o := value.NewObject(h.FunctionProto)
	o.Tag = value.TagFunction
	o.Function = &value.FunctionSlot{Kind: value.FuncEval, Name: "eval", Arity: 1}
	o.PutOwn("length", value.Number(1), 0)
	o.PutOwn("name", value.String("eval"), 0)
	return o
}

// beginCall dispatches a materialized callee/this/args triple: interpreted
// functions push a child frame on their body; native functions run
// synchronously; async-native functions pause the call frame until their
// callback fires.
func (s *Stepper) beginCall(ps *programStack, f *Frame, callee value.Value, this value.Value, args []value.Value, isNew bool) {
	fnObj, ok := callee.(*value.Object)
	if !ok || fnObj.Tag != value.TagFunction || fnObj.Function == nil {
		s.throwErr(ps, s.Heap.Throw("TypeError", "value is not a function"))
		return
	}
	slot := fnObj.Function

	if isNew {
		protoVal, _ := s.Heap.Get(fnObj, "prototype")
		proto, _ := protoVal.(*value.Object)
		if proto == nil {
			proto = s.Heap.ObjectProto
		}
		this = value.NewObject(proto)
		f.Constructed = this.(*value.Object)
	}

	switch slot.Kind {
	case value.FuncInterpreted:
		parent, _ := slot.ParentEnv.(*heap.Scope)
		callScope := heap.NewScope(parent)
		for i, pn := range slot.ParamNames {
			var av value.Value = value.Undef
			if i < len(args) {
				av = args[i]
			}
			callScope.Declare(pn, av, false)
		}
		argsArr := s.Heap.NewArrayOf(args...)
		callScope.Declare("arguments", argsArr, true)
		callScope.Declare("this", this, true)
		node, _ := slot.Node.(*ast.Node)
		PopulateScope(s.Heap, node.Block, callScope)
		f.CallSetupDone = true
		// The body frame's eventual result (whether via an explicit return's
		// popFrameDirect or falling off the end via the ordinary completeTop
		// path) is delivered into f's own fields, not popped further; f's own
		// dispatch (handleCallOrNew) notices CallSetupDone and completes
		// itself with that value on its next turn.
		f.PendingRole = RoleHandlerResult
		child := newFrame(node.Block, callScope)
		child.IsCallBody = true
		ps.frames = append(ps.frames, child)
	case value.FuncNative:
		ctx := &CallContext{Heap: s.Heap, Stepper: s}
		v, err := slot.Native(ctx, this, args)
		if err != nil {
			s.throwErr(ps, err)
			return
		}
		s.finishCall(ps, f, v)
	case value.FuncAsyncNative:
		f.Paused = true
		ctx := &CallContext{Heap: s.Heap, Stepper: s}
		slot.AsyncNative(ctx, this, args, func(v value.Value, err error) {
			f.Paused = false
			if err != nil {
				s.throwErr(ps, err)
				return
			}
			s.finishCall(ps, f, v)
		})
	case value.FuncEval:
		s.beginEval(ps, f, args)
	default:
		s.throwErr(ps, s.Heap.Throw("TypeError", "value is not callable"))
	}
}

// beginEval implements eval(): a non-string argument is returned
// unevaluated (ES5 8.7's "indirect value" shortcut); a string is parsed
// through the Stepper's injected parser and run as a synthetic
// EvalProgram frame in f's own scope — the scope active at the call
// site, not a fresh closure — so declarations made by the evaluated code
// become visible to the caller, matching direct (non-strict) eval.
func (s *Stepper) beginEval(ps *programStack, f *Frame, args []value.Value) {
	if len(args) == 0 {
		s.finishCall(ps, f, value.Undef)
		return
	}
	str, ok := args[0].(value.String)
	if !ok {
		s.finishCall(ps, f, args[0])
		return
	}
	hooks := s.Hooks
	if hooks == nil || hooks.Parser == nil {
		s.throwErr(ps, s.Heap.Throw("EvalError", "eval is not available in this environment"))
		return
	}
	root, err := hooks.Parser.Parse(string(str))
	if err != nil {
		s.throwErr(ps, s.Heap.Throw("SyntaxError", err.Error()))
		return
	}
	evalNode := &ast.Node{Kind: ast.KindEvalProgram, Body: root.Body}
	PopulateScope(s.Heap, evalNode, f.Scope)
	f.CallSetupDone = true
	f.PendingRole = RoleHandlerResult
	child := newFrame(evalNode, f.Scope)
	child.IsCallBody = true
	ps.frames = append(ps.frames, child)
}

// finishCall completes a call frame once its result value is known,
// substituting the constructed `this` object when a constructor's body
// completed with a non-object value.
func (s *Stepper) finishCall(ps *programStack, f *Frame, result value.Value) {
	if f.IsNew {
		if _, isObj := result.(*value.Object); !isObj {
			result = f.Constructed
		}
	}
	s.popFrameDirect(ps, f, result)
}

// popFrameDirect removes f from ps (wherever it currently sits at the top)
// and delivers result to its parent, used by call completion which may be
// invoked asynchronously after other frames were pushed on top during a
// native call's synchronous re-entrancy.
func (s *Stepper) popFrameDirect(ps *programStack, f *Frame, result value.Value) {
	for i := len(ps.frames) - 1; i >= 0; i-- {
		if ps.frames[i] == f {
			ps.frames = ps.frames[:i]
			break
		}
	}
	if len(ps.frames) == 0 {
		ps.done = true
		return
	}
	parent := ps.frames[len(ps.frames)-1]
	s.deliver(parent, parent.PendingRole, parent.PendingIdx, result)
	parent.PendingRole = RoleNone
}
