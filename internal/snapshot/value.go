package snapshot

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/Net-Set/CodeCity/internal/value"
)

// encodeValue renders a runtime value as a small tagged JSON object: the
// five inline primitive kinds ("u"ndefined, "n"ull, "b"oolean, numbe"r",
// "s"tring) carry their payload directly; a heap reference carries the
// index objIndex already assigned it. NaN/Inf numbers are carried as
// strings since JSON numbers can't represent them.
func encodeValue(v value.Value, objIndex map[*value.Object]int) (string, error) {
	b := newBuilder()
	switch vv := v.(type) {
	case nil, value.Undefined:
		b.set("k", "u")
	case value.Null:
		b.set("k", "n")
	case value.Boolean:
		b.set("k", "b").set("v", bool(vv))
	case value.Number:
		b.set("k", "r")
		f := float64(vv)
		if f != f { // NaN
			b.set("v", "NaN")
		} else if f > 1.7976931348623157e+308 {
			b.set("v", "+Inf")
		} else if f < -1.7976931348623157e+308 {
			b.set("v", "-Inf")
		} else {
			b.set("v", f)
		}
	case value.String:
		b.set("k", "s").set("v", string(vv))
	case *value.Object:
		idx, ok := objIndex[vv]
		if !ok {
			return "", fmt.Errorf("snapshot: object %p not indexed", vv)
		}
		b.set("k", "o").set("i", idx)
	default:
		return "", fmt.Errorf("snapshot: unhandled value type %T", v)
	}
	return b.build()
}

// decodeValue is the inverse of encodeValue. objects is the fully-allocated
// (but not necessarily fully-patched) object table; reference cycles are
// fine here because every object already has a shell by the time any
// decodeValue call runs.
func decodeValue(r gjson.Result, objects []*value.Object) (value.Value, error) {
	switch r.Get("k").Str {
	case "u":
		return value.Undef, nil
	case "n":
		return value.Nul, nil
	case "b":
		return value.Bool(r.Get("v").Bool()), nil
	case "r":
		vr := r.Get("v")
		if vr.Type == gjson.String {
			switch vr.Str {
			case "NaN":
				return value.Number(nanValue()), nil
			case "+Inf":
				return value.Number(infValue(1)), nil
			case "-Inf":
				return value.Number(infValue(-1)), nil
			}
		}
		return value.Number(vr.Num), nil
	case "s":
		return value.String(r.Get("v").Str), nil
	case "o":
		idx := int(r.Get("i").Int())
		if idx < 0 || idx >= len(objects) {
			return nil, fmt.Errorf("snapshot: object index %d out of range", idx)
		}
		return objects[idx], nil
	default:
		return nil, fmt.Errorf("snapshot: unrecognized value tag %q", r.Get("k").Str)
	}
}

// encodeFloat renders f as a plain JSON number, or (for the three values
// JSON numbers can't carry) the same string tags encodeValue uses for a
// Number value.
func encodeFloat(f float64) interface{} {
	if f != f {
		return "NaN"
	}
	if f > 1.7976931348623157e+308 {
		return "+Inf"
	}
	if f < -1.7976931348623157e+308 {
		return "-Inf"
	}
	return f
}

func decodeFloat(r gjson.Result) float64 {
	if r.Type == gjson.String {
		switch r.Str {
		case "NaN":
			return nanValue()
		case "+Inf":
			return infValue(1)
		case "-Inf":
			return infValue(-1)
		}
	}
	return r.Num
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func infValue(sign int) float64 {
	one, zero := 1.0, 0.0
	if sign < 0 {
		one = -1.0
	}
	return one / zero
}
