package heap

import (
	"strconv"

	"github.com/Net-Set/CodeCity/internal/value"
)

func isArrayIndex(name string) (uint32, bool) {
	if name == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return 0, false
	}
	// Reject non-canonical forms ("01", "+1") the same way ParseUint already
	// does by round-tripping the formatted string.
	if strconv.FormatUint(n, 10) != name {
		return 0, false
	}
	return uint32(n), true
}

func (h *Heap) protoFor(v value.Value) *value.Object {
	switch v.(type) {
	case value.String:
		return h.StringProto
	case value.Number:
		return h.NumberProto
	case value.Boolean:
		return h.BooleanProto
	default:
		return nil
	}
}

// Get implements the property-read operation: prototype-chain walk with
// array length and string character indices treated as computed
// properties. Reading from null/undefined is a TypeError; reading from any
// other primitive boxes it against the matching prototype.
func (h *Heap) Get(o value.Value, name string) (value.Value, error) {
	switch ov := o.(type) {
	case value.Undefined, value.Null:
		return nil, h.Throw("TypeError", "cannot read property '"+name+"' of "+value.ToString(value.NewCycleCtx(), o))
	case value.String:
		if name == "length" {
			return value.Number(float64(len([]rune(string(ov))))), nil
		}
		if idx, ok := isArrayIndex(name); ok {
			runes := []rune(string(ov))
			if int(idx) < len(runes) {
				return value.String(string(runes[idx])), nil
			}
			return value.Undef, nil
		}
		return h.getFromObject(h.StringProto, name)
	case value.Number, value.Boolean:
		proto := h.protoFor(o)
		return h.getFromObject(proto, name)
	case *value.Object:
		if ov.Tag == value.TagArray && name == "length" {
			return value.Number(float64(ov.ArrayLength)), nil
		}
		return h.getFromObject(ov, name)
	default:
		return value.Undef, nil
	}
}

func (h *Heap) getFromObject(o *value.Object, name string) (value.Value, error) {
	for cur := o; cur != nil; cur = cur.Prototype {
		if v, _, ok := cur.GetOwn(name); ok {
			return v, nil
		}
	}
	return value.Undef, nil
}

// Has implements the `in`-operator traversal: same prototype walk as Get,
// but only defined for objects — calling it on a primitive is a TypeError.
func (h *Heap) Has(o value.Value, name string) (bool, error) {
	ov, ok := o.(*value.Object)
	if !ok {
		return false, h.Throw("TypeError", "cannot use 'in' operator on a non-object")
	}
	if ov.Tag == value.TagArray && name == "length" {
		return true, nil
	}
	for cur := ov; cur != nil; cur = cur.Prototype {
		if cur.HasOwn(name) {
			return true, nil
		}
	}
	return false, nil
}

// Set implements the property-write operation, including the array length
// invariant (writing a numeric index extends length; writing length
// shrinks and removes now out-of-range indices) and the various refusal
// rules (non-writable, non-configurable attribute changes, non-extensible
// objects refusing new own keys, and numeric/length writes on strings).
func (h *Heap) Set(o value.Value, name string, v value.Value) error {
	switch o.(type) {
	case value.Undefined, value.Null:
		return h.Throw("TypeError", "cannot set property '"+name+"' of "+value.ToString(value.NewCycleCtx(), o))
	case value.String:
		return h.Throw("TypeError", "cannot assign to a string's indices or length")
	}
	ov, ok := o.(*value.Object)
	if !ok {
		// Numbers/booleans silently discard writes, matching non-strict-mode
		// assignment to a boxed primitive's property.
		return nil
	}

	if ov.Tag == value.TagArray {
		if name == "length" {
			n := value.ToNumber(value.NewCycleCtx(), v)
			newLen := uint32(n)
			if float64(newLen) != n {
				return h.Throw("RangeError", "invalid array length")
			}
			h.setArrayLength(ov, newLen)
			return nil
		}
		if idx, isIdx := isArrayIndex(name); isIdx {
			if err := h.putOwnChecked(ov, name, v); err != nil {
				return err
			}
			if idx+1 > ov.ArrayLength {
				ov.ArrayLength = idx + 1
			}
			return nil
		}
	}

	return h.putOwnChecked(ov, name, v)
}

// putOwnChecked applies the writable/configurable/extensible refusal rules
// before mutating an own property, walking the prototype chain only to
// find an existing non-writable accessor that should block the write.
func (h *Heap) putOwnChecked(o *value.Object, name string, v value.Value) error {
	if existing, attrs, ok := o.GetOwn(name); ok {
		if !attrs.Writable() {
			return h.Throw("TypeError", "cannot assign to read only property '"+name+"'")
		}
		_ = existing
		o.PutOwn(name, v, attrs)
		return nil
	}
	// Walk the prototype chain: a non-writable property up the chain still
	// blocks creating an own shadow, matching ordinary JS semantics.
	for cur := o.Prototype; cur != nil; cur = cur.Prototype {
		if _, attrs, ok := cur.GetOwn(name); ok && !attrs.Writable() {
			return h.Throw("TypeError", "cannot assign to read only property '"+name+"'")
		}
	}
	if !o.Extensible() {
		return h.Throw("TypeError", "cannot add property '"+name+"', object is not extensible")
	}
	o.PutOwn(name, v, value.DefaultAttrs)
	return nil
}

// setArrayLength implements the shrink side of the array length invariant:
// lowering length deletes every index at or above the new length.
func (h *Heap) setArrayLength(o *value.Object, newLen uint32) {
	if newLen < o.ArrayLength {
		for i := newLen; i < o.ArrayLength; i++ {
			o.DeleteOwn(strconv.FormatUint(uint64(i), 10))
		}
	}
	o.ArrayLength = newLen
}

// Delete implements the delete operator on a property reference. It refuses
// (returns false, no error) for non-writable own properties, for an
// array's "length", and for any primitive base; otherwise it removes the
// key.
func (h *Heap) Delete(o value.Value, name string) (bool, error) {
	ov, ok := o.(*value.Object)
	if !ok {
		return false, nil
	}
	if ov.Tag == value.TagArray && name == "length" {
		return false, nil
	}
	_, attrs, exists := ov.GetOwn(name)
	if !exists {
		return true, nil
	}
	if !attrs.Writable() {
		return false, nil
	}
	ov.DeleteOwn(name)
	if ov.Tag == value.TagArray {
		if idx, isIdx := isArrayIndex(name); isIdx && idx+1 == ov.ArrayLength {
			// Leave length as-is: deleting the top index does not shrink
			// length, only an explicit length write does (array holes).
			_ = idx
		}
	}
	return true, nil
}

// EnumerateKeys implements the for-in key order: own enumerable keys first,
// then each prototype's own enumerable keys, skipping names already
// visited at any earlier level. For primitives other than null/undefined,
// it enumerates the boxed form's computed keys (e.g. string indices).
func (h *Heap) EnumerateKeys(o value.Value) []string {
	var out []string
	seen := make(map[string]bool)

	if s, ok := o.(value.String); ok {
		runes := []rune(string(s))
		for i := range runes {
			k := strconv.Itoa(i)
			out = append(out, k)
			seen[k] = true
		}
		o = h.StringProto
	}

	ov, ok := o.(*value.Object)
	if !ok {
		return out
	}
	for cur := ov; cur != nil; cur = cur.Prototype {
		for _, k := range cur.OwnKeys() {
			if seen[k] {
				continue
			}
			seen[k] = true
			if _, attrs, exists := cur.GetOwn(k); exists && attrs.Enumerable() {
				out = append(out, k)
			}
		}
	}
	return out
}
