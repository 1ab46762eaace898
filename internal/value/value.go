// Package value implements the runtime value model: the closed set of
// primitive and heap values a running program can hold, plus the
// coercion and comparison rules that operate on them.
package value

import "fmt"

// Kind identifies which member of the tagged union a Value is.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is implemented by every runtime value: the five primitives defined
// below and *Object for all heap values.
type Value interface {
	Kind() Kind
}

// Undefined is the singleton "undefined" value.
type Undefined struct{}

func (Undefined) Kind() Kind { return KindUndefined }

// Null is the singleton "null" value.
type Null struct{}

func (Null) Kind() Kind { return KindNull }

// Boolean wraps a primitive boolean.
type Boolean bool

func (Boolean) Kind() Kind { return KindBoolean }

// Number wraps an IEEE-754 double, the only numeric type in the language.
type Number float64

func (Number) Kind() Kind { return KindNumber }

// String wraps a primitive string.
type String string

func (String) Kind() Kind { return KindString }

var (
	// Undef and Nul are canonical instances, convenient where a literal
	// value is needed rather than a fresh zero value.
	Undef Value = Undefined{}
	Nul   Value = Null{}
	True  Value = Boolean(true)
	False Value = Boolean(false)
)

// Bool returns the canonical True/False instance for b.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// IsPrimitive reports whether v is one of the five non-object kinds.
func IsPrimitive(v Value) bool {
	_, ok := v.(*Object)
	return !ok
}

// TypeOf implements the language's typeof operator, including the
// null-is-object special case.
func TypeOf(v Value) string {
	switch vv := v.(type) {
	case Undefined:
		return "undefined"
	case Null:
		return "object"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case *Object:
		if vv.Tag == TagFunction {
			return "function"
		}
		return "object"
	default:
		panic(fmt.Sprintf("value: unhandled Value type %T", v))
	}
}
