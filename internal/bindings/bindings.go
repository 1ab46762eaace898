// Package bindings is the fixed initialization routine of the host
// environment: it populates a Heap's global scope with the constructors,
// prototype methods, and free functions every program can see, and wires a
// handful of host-only extensions (logging, checkpoint, shutdown, hashing)
// that have no ES5 syntax of their own.
package bindings

import (
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/value"
)

// methodAttrs is what every built-in prototype method and constructor
// static method gets: present but invisible to for-in, matching "installed
// on the appropriate prototypes as non-enumerable native-function
// properties".
const methodAttrs = value.AttrWritable | value.AttrConfigurable

// method installs a native function as a non-enumerable own property of
// proto.
func method(h *heap.Heap, proto *value.Object, name string, arity int, impl value.NativeImpl) {
	fn := interp.NewNativeFunction(h, name, arity, impl)
	proto.PutOwn(name, fn, methodAttrs)
}

// global declares name in the heap's global scope, writable like an
// ordinary host-provided binding (user code assigning over e.g. `Array` is
// legal, if unusual) but protected against deletion, matching real ES5
// builtins: writable, but DontDelete.
func global(h *heap.Heap, name string, v value.Value) {
	h.Global.DeclareProtected(name, v)
}

// wireCtor builds a native-function constructor, chains it to proto via the
// usual two-way "prototype"/"constructor" own properties, and declares it
// in the global scope under name.
func wireCtor(h *heap.Heap, name string, proto *value.Object, arity int, impl value.NativeImpl) *value.Object {
	ctor := interp.NewNativeFunction(h, name, arity, impl)
	ctor.PutOwn("prototype", proto, 0)
	proto.PutOwn("constructor", ctor, methodAttrs)
	global(h, name, ctor)
	return ctor
}

// cc recovers the CallContext a NativeImpl is always invoked with.
func cc(ctx interface{}) *interp.CallContext { return ctx.(*interp.CallContext) }

func arg(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.Undef
}

// thisObject coerces this to the *value.Object a prototype method expects
// to operate on, raising the TypeError ES5 specifies for primitive
// receivers on methods that only make sense against an object.
func thisObject(h *heap.Heap, this value.Value) (*value.Object, error) {
	o, ok := this.(*value.Object)
	if !ok {
		return nil, h.Throw("TypeError", "method called on a non-object receiver")
	}
	return o, nil
}
