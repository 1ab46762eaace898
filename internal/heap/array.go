package heap

import (
	"strconv"

	"github.com/Net-Set/CodeCity/internal/value"
)

// NewArray allocates an empty array object chained to this Heap's
// ArrayProto.
func (h *Heap) NewArray() *value.Object {
	o := value.NewObject(h.ArrayProto)
	o.Tag = value.TagArray
	return o
}

// NewArrayOf allocates an array pre-populated with elems, in order.
func (h *Heap) NewArrayOf(elems ...value.Value) *value.Object {
	o := h.NewArray()
	for i, e := range elems {
		o.PutOwn(strconv.Itoa(i), e, value.DefaultAttrs)
	}
	o.ArrayLength = uint32(len(elems))
	return o
}

// ArrayElement reads an array's element at idx, or undefined if the index
// is a hole or out of range. Unlike Get, this bypasses the prototype chain,
// matching what host array methods (push/pop/slice/...) need internally.
func ArrayElement(o *value.Object, idx uint32) value.Value {
	v, _, ok := o.GetOwn(strconv.FormatUint(uint64(idx), 10))
	if !ok {
		return value.Undef
	}
	return v
}

// SetArrayElement writes an array's element at idx and extends ArrayLength
// if needed, bypassing the writable/extensible checks that property
// assignment from user code goes through — host array methods always
// succeed against their own freshly-built or already-owned array.
func SetArrayElement(o *value.Object, idx uint32, v value.Value) {
	o.PutOwn(strconv.FormatUint(uint64(idx), 10), v, value.DefaultAttrs)
	if idx+1 > o.ArrayLength {
		o.ArrayLength = idx + 1
	}
}

// DeleteArrayElement removes an array's element at idx without touching
// ArrayLength (a hole, not a shrink).
func DeleteArrayElement(o *value.Object, idx uint32) {
	o.DeleteOwn(strconv.FormatUint(uint64(idx), 10))
}

// ToSlice materializes an array's elements 0..ArrayLength-1 as a Go slice,
// with holes read as undefined — the shape every host array method
// (push/pop/splice/slice/join/...) operates on.
func ToSlice(o *value.Object) []value.Value {
	out := make([]value.Value, o.ArrayLength)
	for i := range out {
		out[i] = ArrayElement(o, uint32(i))
	}
	return out
}

// FromSlice overwrites an array object's elements and length from a Go
// slice, used after host methods like splice/sort compute a new element
// sequence.
func FromSlice(o *value.Object, elems []value.Value) {
	old := o.ArrayLength
	for i, e := range elems {
		SetArrayElement(o, uint32(i), e)
	}
	for i := uint32(len(elems)); i < old; i++ {
		DeleteArrayElement(o, i)
	}
	o.ArrayLength = uint32(len(elems))
}
