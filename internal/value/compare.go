package value

import (
	"math"
	"strconv"
)

// Ordering is the result of Compare: one of {Less, Equal, Greater,
// Incomparable}.
type Ordering int8

const (
	Less         Ordering = -1
	Equal        Ordering = 0
	Greater      Ordering = 1
	Incomparable Ordering = 2
)

func isNumericString(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// Compare implements the relational comparison rule: NaN on either
// side is incomparable; two primitives compare numerically when either is a
// Number or both are numeric strings (else lexicographically); otherwise both sides are
// reduced to their string form first. Two distinct non-primitive objects
// whose string forms match are still Incomparable here — relational
// operators never call Compare on two objects directly without first
// going through ToPrimitive in the interpreter's binary-operator handler,
// but Compare itself stays total and side-effect-free.
func Compare(ctx ToStringCtx, a, b Value) Ordering {
	aPrim, bPrim := IsPrimitive(a), IsPrimitive(b)

	if aPrim && bPrim {
		if an, aIsNum := a.(Number); aIsNum {
			if bn, bIsNum := b.(Number); bIsNum {
				return compareFloats(float64(an), float64(bn))
			}
		}
		// If either side is a Number, or both sides look numeric once
		// converted from string, compare numerically; else lexicographic.
		_, aIsNum := a.(Number)
		_, bIsNum := b.(Number)
		if aIsNum || bIsNum {
			return compareFloats(ToNumber(ctx, a), ToNumber(ctx, b))
		}
		as, aok := a.(String)
		bs, bok := b.(String)
		if aok && bok {
			if af, aIsNumStr := isNumericString(string(as)); aIsNumStr {
				if bf, bIsNumStr := isNumericString(string(bs)); bIsNumStr {
					return compareFloats(af, bf)
				}
			}
			return compareStrings(string(as), string(bs))
		}
		return compareFloats(ToNumber(ctx, a), ToNumber(ctx, b))
	}

	as, bs := ToString(ctx, a), ToString(ctx, b)
	if oa, ok := a.(*Object); ok {
		if ob, ok := b.(*Object); ok && oa != ob && as == bs {
			return Incomparable
		}
	}
	return compareStrings(as, bs)
}

func compareFloats(a, b float64) Ordering {
	if math.IsNaN(a) || math.IsNaN(b) {
		return Incomparable
	}
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func compareStrings(a, b string) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

// LooseEquals implements ==. Primitives compare by value; two *Object
// references compare by identity: two distinct objects are never loosely
// equal here even if their string forms coincide (see DESIGN.md Open
// Questions for the reasoning).
func LooseEquals(ctx ToStringCtx, a, b Value) bool {
	oa, aIsObj := a.(*Object)
	ob, bIsObj := b.(*Object)
	if aIsObj || bIsObj {
		if aIsObj && bIsObj {
			return oa == ob
		}
		return false
	}
	return primitiveEquals(ctx, a, b)
}

// StrictEquals implements ===: reference equality for objects, value
// equality for primitives, with no type coercion (unlike LooseEquals,
// which coerces numeric strings).
func StrictEquals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Undefined, Null:
		return true
	case Boolean:
		return av == b.(Boolean)
	case Number:
		bv := b.(Number)
		return float64(av) == float64(bv) // NaN != NaN falls out naturally
	case String:
		return av == b.(String)
	case *Object:
		return av == b.(*Object)
	default:
		return false
	}
}

func primitiveEquals(ctx ToStringCtx, a, b Value) bool {
	if a.Kind() == b.Kind() {
		return StrictEquals(a, b)
	}
	// undefined == null
	_, aUndef := a.(Undefined)
	_, aNull := a.(Null)
	_, bUndef := b.(Undefined)
	_, bNull := b.(Null)
	if (aUndef || aNull) && (bUndef || bNull) {
		return true
	}
	if aUndef || aNull || bUndef || bNull {
		return false
	}
	return compareFloats(ToNumber(ctx, a), ToNumber(ctx, b)) == Equal
}
