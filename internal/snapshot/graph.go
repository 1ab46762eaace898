package snapshot

import (
	"sort"

	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/value"
)

// graph is the result of walking every object and scope reachable from a
// Heap's well-known roots and a Stepper's live stack frames: a stable,
// sequential index for each, in first-visit order, so that any reference
// between them can be written as a small integer rather than a pointer.
type graph struct {
	objs       []*value.Object
	objIndex   map[*value.Object]int
	scopes     []*heap.Scope
	scopeIndex map[*heap.Scope]int
}

func newGraph() *graph {
	return &graph{
		objIndex:   make(map[*value.Object]int),
		scopeIndex: make(map[*heap.Scope]int),
	}
}

func (g *graph) visitValue(v value.Value) {
	if o, ok := v.(*value.Object); ok {
		g.visitObject(o)
	}
}

func (g *graph) visitObject(o *value.Object) {
	if o == nil {
		return
	}
	if _, ok := g.objIndex[o]; ok {
		return
	}
	g.objIndex[o] = len(g.objs)
	g.objs = append(g.objs, o)

	g.visitObject(o.Prototype)
	for _, k := range o.OwnKeys() {
		v, _, _ := o.GetOwn(k)
		g.visitValue(v)
	}
	if o.Function != nil {
		if env, ok := o.Function.ParentEnv.(*heap.Scope); ok {
			g.visitScope(env)
		}
	}
}

func (g *graph) visitScope(s *heap.Scope) {
	if s == nil {
		return
	}
	if _, ok := g.scopeIndex[s]; ok {
		return
	}
	g.scopeIndex[s] = len(g.scopes)
	g.scopes = append(g.scopes, s)

	g.visitScope(s.Outer())
	names := s.Names()
	sort.Strings(names)
	for _, name := range names {
		g.visitValue(s.Get(name))
	}
}

func (g *graph) visitFrame(f *interp.Frame) {
	if f == nil {
		return
	}
	g.visitScope(f.Scope)
	g.visitScope(f.CatchScope)
	for _, v := range []value.Value{
		f.LeftVal, f.RightVal, f.TestVal, f.ObjectVal, f.PropertyVal,
		f.Callee, f.ThisVal, f.Value,
	} {
		g.visitValue(v)
	}
	for _, v := range f.ArgVals {
		g.visitValue(v)
	}
	for _, v := range f.Elements {
		g.visitValue(v)
	}
	for _, v := range f.PropVals {
		g.visitValue(v)
	}
	g.visitObject(f.Constructed)
	if f.Ref != nil {
		g.visitScope(f.Ref.Scope)
		g.visitValue(f.Ref.Object)
	}
	if p := f.ExportFinallyPend(); p != nil {
		g.visitValue(p.Value)
	}
}

// buildGraph walks every well-known prototype/error-prototype, the global
// scope, and every live stack frame of s, discovering the full reachable
// object/scope set in deterministic (first-visit) order.
func buildGraph(h *heap.Heap, s *interp.Stepper) *graph {
	g := newGraph()
	g.visitObject(h.ObjectProto)
	g.visitObject(h.FunctionProto)
	g.visitObject(h.ArrayProto)
	g.visitObject(h.StringProto)
	g.visitObject(h.NumberProto)
	g.visitObject(h.BooleanProto)
	g.visitObject(h.DateProto)
	g.visitObject(h.RegexProto)
	for _, kind := range errorProtoOrder {
		g.visitObject(h.ErrorProtos[kind])
	}
	g.visitScope(h.Global)
	for i := 0; i < s.NumStacks(); i++ {
		snap := s.StackAt(i)
		for _, f := range snap.Frames {
			g.visitFrame(f)
		}
		if snap.Pending != nil {
			g.visitValue(snap.Pending.Value)
		}
	}
	return g
}

// errorProtoOrder fixes iteration order over Heap.ErrorProtos (a map) so
// encoding the same heap twice in a row produces byte-identical output.
var errorProtoOrder = []string{
	"Error", "EvalError", "RangeError", "ReferenceError",
	"SyntaxError", "TypeError", "URIError",
}

// nativeTagIndex walks a freshly host-bindings-installed Heap (no user code
// has run yet) and returns every native/async-native function object found,
// keyed by its stable NativeTag. A decoder uses this to reunite a snapshot's
// native-function records with the real Go closures Install() already
// wired up, rather than trying to serialize a function value.
func nativeTagIndex(h *heap.Heap) map[int64]*value.Object {
	out := make(map[int64]*value.Object)
	seen := make(map[*value.Object]bool)
	var walk func(o *value.Object)
	walk = func(o *value.Object) {
		if o == nil || seen[o] {
			return
		}
		seen[o] = true
		if o.Function != nil && o.Function.NativeTag != 0 {
			out[o.Function.NativeTag] = o
		}
		walk(o.Prototype)
		for _, k := range o.OwnKeys() {
			v, _, _ := o.GetOwn(k)
			if child, ok := v.(*value.Object); ok {
				walk(child)
			}
		}
	}
	walk(h.ObjectProto)
	walk(h.FunctionProto)
	walk(h.ArrayProto)
	walk(h.StringProto)
	walk(h.NumberProto)
	walk(h.BooleanProto)
	walk(h.DateProto)
	walk(h.RegexProto)
	for _, kind := range errorProtoOrder {
		walk(h.ErrorProtos[kind])
	}
	var walkScope func(s *heap.Scope)
	seenScope := make(map[*heap.Scope]bool)
	walkScope = func(s *heap.Scope) {
		if s == nil || seenScope[s] {
			return
		}
		seenScope[s] = true
		for _, name := range s.Names() {
			if o, ok := s.Get(name).(*value.Object); ok {
				walk(o)
			}
		}
		walkScope(s.Outer())
	}
	walkScope(h.Global)
	return out
}
