package bindings

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

// installJSON wires JSON.parse/stringify on top of gjson/sjson's text
// codec rather than hand-rolling a JSON scanner — the same pairing the
// snapshot format's own text encoding uses.
func installJSON(h *heap.Heap) {
	obj := value.NewObject(h.ObjectProto)
	global(h, "JSON", obj)

	method(h, obj, "parse", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		text := value.ToString(value.NewCycleCtx(), arg(args, 0))
		if !gjson.Valid(text) {
			return nil, h.Throw("SyntaxError", "invalid JSON text")
		}
		return gjsonToValue(h, gjson.Parse(text)), nil
	})

	method(h, obj, "stringify", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		v := arg(args, 0)
		text, undef, err := valueToJSONText(h, v, map[*value.Object]bool{})
		if err != nil {
			return nil, err
		}
		if undef {
			return value.Undef, nil
		}
		return value.String(text), nil
	})
}

func gjsonToValue(h *heap.Heap, r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.Nul
	case gjson.False:
		return value.False
	case gjson.True:
		return value.True
	case gjson.Number:
		return value.Number(r.Num)
	case gjson.String:
		return value.String(r.Str)
	case gjson.JSON:
		if r.IsArray() {
			var elems []value.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, gjsonToValue(h, v))
				return true
			})
			return h.NewArrayOf(elems...)
		}
		o := value.NewObject(h.ObjectProto)
		r.ForEach(func(k, v gjson.Result) bool {
			o.PutOwn(k.Str, gjsonToValue(h, v), value.DefaultAttrs)
			return true
		})
		return o
	default:
		return value.Undef
	}
}

// valueToJSONText serializes v into raw JSON text by successively writing
// each reachable leaf into an accumulator with sjson, matching JSON.stringify's
// rule that undefined/function values are omitted (from objects) or become
// null (inside arrays), and that a top-level undefined/function stringifies
// to the host "undefined" result rather than any JSON text at all.
func valueToJSONText(h *heap.Heap, v value.Value, seen map[*value.Object]bool) (string, bool, error) {
	switch vv := v.(type) {
	case value.Undefined:
		return "", true, nil
	case value.Null:
		return "null", false, nil
	case value.Boolean:
		if vv {
			return "true", false, nil
		}
		return "false", false, nil
	case value.Number:
		return strconv.FormatFloat(float64(vv), 'g', -1, 64), false, nil
	case value.String:
		quoted, err := sjson.Set("{}", "v", string(vv))
		if err != nil {
			return "", false, h.Throw("TypeError", "failed to serialize string")
		}
		return gjson.Get(quoted, "v").Raw, false, nil
	case *value.Object:
		if vv.Tag == value.TagFunction {
			return "", true, nil
		}
		if seen[vv] {
			return "", false, h.Throw("TypeError", "cannot stringify a circular structure")
		}
		seen[vv] = true
		defer delete(seen, vv)

		if vv.Tag == value.TagArray {
			text := "[]"
			for i := uint32(0); i < vv.ArrayLength; i++ {
				elem, _, ok := vv.GetOwn(strconv.FormatUint(uint64(i), 10))
				if !ok {
					elem = value.Nul
				}
				part, undef, err := valueToJSONText(h, elem, seen)
				if err != nil {
					return "", false, err
				}
				if undef {
					part = "null"
				}
				updated, err2 := sjson.SetRaw(text, strconv.Itoa(int(i)), part)
				if err2 != nil {
					return "", false, h.Throw("TypeError", "failed to serialize array element")
				}
				text = updated
			}
			return text, false, nil
		}

		text := "{}"
		for _, k := range vv.OwnKeys() {
			pv, attrs, ok := vv.GetOwn(k)
			if !ok || !attrs.Enumerable() {
				continue
			}
			part, undef, err := valueToJSONText(h, pv, seen)
			if err != nil {
				return "", false, err
			}
			if undef {
				continue
			}
			updated, err2 := sjson.SetRaw(text, jsonKeyPath(k), part)
			if err2 != nil {
				return "", false, h.Throw("TypeError", "failed to serialize object property")
			}
			text = updated
		}
		return text, false, nil
	default:
		return "", true, nil
	}
}

// jsonKeyPath escapes a property name for use as an sjson path component,
// since sjson interprets '.', '*', '?', '|', '#', and '\' specially.
func jsonKeyPath(key string) string {
	esc := make([]byte, 0, len(key)+2)
	for i := 0; i < len(key); i++ {
		c := key[i]
		if c == '.' || c == '*' || c == '?' || c == '|' || c == '#' || c == '\\' {
			esc = append(esc, '\\')
		}
		esc = append(esc, c)
	}
	return string(esc)
}
