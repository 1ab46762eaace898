package value

// Tag identifies the internal-slot shape of an Object, per the data model's
// "type tag (one of: object, array, function, regex, date, error)".
type Tag uint8

const (
	TagPlain Tag = iota
	TagArray
	TagFunction
	TagRegex
	TagDate
	TagError
)

// Attrs is a positive per-property attribute bitmask. The data model is
// phrased negatively elsewhere (three disjoint sets: non-writable,
// non-enumerable, non-configurable); round-tripping through the snapshot
// format preserves exactly the same information as a bitmask, so that's the
// representation used in memory (see DESIGN.md, "Property attribute
// representation").
type Attrs uint8

const (
	AttrWritable Attrs = 1 << iota
	AttrEnumerable
	AttrConfigurable
)

// DefaultAttrs is what a freshly-declared own property gets unless a
// descriptor says otherwise: writable, enumerable, and configurable.
const DefaultAttrs = AttrWritable | AttrEnumerable | AttrConfigurable

func (a Attrs) Writable() bool     { return a&AttrWritable != 0 }
func (a Attrs) Enumerable() bool   { return a&AttrEnumerable != 0 }
func (a Attrs) Configurable() bool { return a&AttrConfigurable != 0 }

// prop is one entry of an Object's own-property map.
type prop struct {
	value Value
	attrs Attrs
}

// FuncKind distinguishes the four ways a Function-tagged Object can be
// implemented, per the data model's Function internal slots.
type FuncKind uint8

const (
	FuncInterpreted FuncKind = iota
	FuncNative
	FuncAsyncNative
	FuncEval
)

// NativeImpl is a host function body. ctx is opaque to the value package
// (it is *interp.CallContext in practice) so that this package has no
// dependency on the interpreter.
type NativeImpl func(ctx interface{}, this Value, args []Value) (Value, error)

// AsyncNativeImpl is a callback-style host function body: it is handed a
// single-shot callback that resumes the paused stepper with a result.
type AsyncNativeImpl func(ctx interface{}, this Value, args []Value, resume func(Value, error))

// FunctionSlot holds the internal state of a Function-tagged Object.
type FunctionSlot struct {
	Kind FuncKind

	// Interpreted functions.
	NodeID     int64       // stable id of the function's syntax-tree node
	Node       interface{} // *ast.Node; interface{} to avoid an import cycle
	ParentEnv  interface{} // *heap.Scope captured at creation
	Name       string
	ParamNames []string

	// Native / async-native functions.
	NativeTag   int64
	Arity       int
	Native      NativeImpl
	AsyncNative AsyncNativeImpl

	// Constructor bookkeeping: functions used with `new` need a "prototype"
	// own-property, which is stored as a normal property (see GetOwn),
	// not here; this slot only carries what isn't representable as a
	// regular JS-visible property.
	IsClassCtor bool
}

// Object is the sole heap-allocated value kind. All reference values
// (plain objects, arrays, functions, regexes, dates, errors) are *Object
// values distinguished by Tag and the internal slot populated for that tag.
type Object struct {
	Tag       Tag
	Prototype *Object // nil means "no prototype" (Object.prototype itself)

	keys  []string // insertion order of own property keys
	props map[string]*prop

	extensible bool

	// Array internal slot.
	ArrayLength uint32

	// Function internal slot.
	Function *FunctionSlot

	// Regex internal slot.
	RegexSource string
	RegexFlags  string
	// RegexLastIndex is exposed as the ordinary "lastIndex" property too;
	// mirrored here only to let native regex methods avoid a property
	// round-trip on every match.
	RegexLastIndex int64

	// Date internal slot: milliseconds since the Unix epoch, or NaN for an
	// invalid date.
	DateEpochMS float64

	// Error internal slot: which error kind this is ("Error" or one of its
	// six subkinds), used for
	// prototype lookup and the bare "Name" in to-string when no message.
	ErrorKind string
}

// NewObject allocates a fresh, extensible plain object with the given
// prototype (nil for none).
func NewObject(proto *Object) *Object {
	return &Object{
		Tag:        TagPlain,
		Prototype:  proto,
		props:      make(map[string]*prop),
		extensible: true,
	}
}

func (*Object) Kind() Kind { return KindObject }

// Extensible reports whether new own properties may be added.
func (o *Object) Extensible() bool { return o.extensible }

// PreventExtensions marks the object as non-extensible.
func (o *Object) PreventExtensions() { o.extensible = false }

// OwnKeys returns the object's own property keys in insertion order.
func (o *Object) OwnKeys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// GetOwn returns the own property named name, or (nil, false) if absent.
// It does not walk the prototype chain and does not synthesize computed
// properties (array length, string indices) — callers needing those use
// the heap package's Get.
func (o *Object) GetOwn(name string) (Value, Attrs, bool) {
	p, ok := o.props[name]
	if !ok {
		return nil, 0, false
	}
	return p.value, p.attrs, true
}

// HasOwn reports whether name is an own property.
func (o *Object) HasOwn(name string) bool {
	_, ok := o.props[name]
	return ok
}

// PutOwn creates or overwrites an own property unconditionally, bypassing
// writable/configurable checks. Used by host-binding setup and by the
// snapshot loader, which both need to build objects whose properties would
// otherwise refuse to be set (e.g. non-writable prototype methods).
func (o *Object) PutOwn(name string, v Value, attrs Attrs) {
	if _, exists := o.props[name]; !exists {
		o.keys = append(o.keys, name)
	}
	o.props[name] = &prop{value: v, attrs: attrs}
}

// DeleteOwn unconditionally removes an own property. Callers enforcing the
// non-writable/non-configurable refusal rules of delete() do so before
// calling this.
func (o *Object) DeleteOwn(name string) {
	if _, ok := o.props[name]; !ok {
		return
	}
	delete(o.props, name)
	for i, k := range o.keys {
		if k == name {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

func (t Tag) String() string {
	switch t {
	case TagPlain:
		return "object"
	case TagArray:
		return "array"
	case TagFunction:
		return "function"
	case TagRegex:
		return "regex"
	case TagDate:
		return "date"
	case TagError:
		return "error"
	default:
		return "unknown"
	}
}
