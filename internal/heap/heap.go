// Package heap implements the runtime's object graph: property access with
// prototype-chain walking and the array/string computed-property rules, the
// lexical scope chain, and construction of the built-in error kinds the
// interpreter throws on illegal operations.
package heap

import "github.com/Net-Set/CodeCity/internal/value"

// errorKinds lists the six Error subkinds plus the base "Error" kind, in
// the fixed order their prototypes are installed during host-binding
// initialization.
var errorKinds = []string{
	"Error", "EvalError", "RangeError", "ReferenceError",
	"SyntaxError", "TypeError", "URIError",
}

// Heap owns the prototype objects every tagged value is ultimately chained
// to, plus the root (global) scope. Host-binding setup populates the
// prototypes' own properties; this package only needs to know the
// prototype identities to implement the computed-property rules (array
// length, string indices) and to manufacture the interpreter's own error
// objects.
type Heap struct {
	ObjectProto   *value.Object
	FunctionProto *value.Object
	ArrayProto    *value.Object
	StringProto   *value.Object
	NumberProto   *value.Object
	BooleanProto  *value.Object
	DateProto     *value.Object
	RegexProto    *value.Object

	// ErrorProtos maps each of the seven error kind names to its prototype
	// object (each itself chained to ObjectProto, with "Error" at the root
	// of the error-prototype chain and the other six chained to it).
	ErrorProtos map[string]*value.Object

	Global *Scope
}

// New allocates a Heap with bare prototype objects (chained to one another
// per the standard prototype layout) and an empty global scope. Host
// bindings populate the prototypes' methods and the global scope's
// constructor bindings afterward.
func New() *Heap {
	h := &Heap{
		ErrorProtos: make(map[string]*value.Object),
		Global:      NewScope(nil),
	}
	h.ObjectProto = value.NewObject(nil)
	h.FunctionProto = value.NewObject(h.ObjectProto)
	h.ArrayProto = value.NewObject(h.ObjectProto)
	h.ArrayProto.Tag = value.TagArray
	h.StringProto = value.NewObject(h.ObjectProto)
	h.NumberProto = value.NewObject(h.ObjectProto)
	h.BooleanProto = value.NewObject(h.ObjectProto)
	h.DateProto = value.NewObject(h.ObjectProto)
	h.DateProto.Tag = value.TagDate
	h.RegexProto = value.NewObject(h.ObjectProto)
	h.RegexProto.Tag = value.TagRegex

	baseErr := value.NewObject(h.ObjectProto)
	baseErr.Tag = value.TagError
	baseErr.ErrorKind = "Error"
	baseErr.PutOwn("name", value.String("Error"), value.DefaultAttrs)
	h.ErrorProtos["Error"] = baseErr
	for _, kind := range errorKinds[1:] {
		p := value.NewObject(baseErr)
		p.Tag = value.TagError
		p.ErrorKind = kind
		p.PutOwn("name", value.String(kind), value.DefaultAttrs)
		h.ErrorProtos[kind] = p
	}
	return h
}

// JSError wraps a language-level error *value.Object (constructed by
// NewError) so Go code can propagate it as an error while the interpreter's
// throw-unwind logic recognizes it and re-raises the wrapped value as a
// thrown exception instead of a host failure.
type JSError struct {
	Value *value.Object
}

func (e *JSError) Error() string {
	ctx := value.NewCycleCtx()
	return value.ToString(ctx, e.Value)
}

// NewError constructs a new Error-tagged object of the given kind
// ("TypeError", "RangeError", ...) with the given message, chained to that
// kind's prototype.
func (h *Heap) NewError(kind, message string) *value.Object {
	proto, ok := h.ErrorProtos[kind]
	if !ok {
		proto = h.ErrorProtos["Error"]
		kind = "Error"
	}
	o := value.NewObject(proto)
	o.Tag = value.TagError
	o.ErrorKind = kind
	o.PutOwn("message", value.String(message), value.DefaultAttrs)
	return o
}

// Throw is a convenience wrapper combining NewError with JSError, for the
// common case of a property-access or call-site failure.
func (h *Heap) Throw(kind, message string) error {
	return &JSError{Value: h.NewError(kind, message)}
}
