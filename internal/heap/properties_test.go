package heap

import (
	"testing"

	"github.com/Net-Set/CodeCity/internal/value"
)

func TestGetOnNullIsTypeError(t *testing.T) {
	h := New()
	if _, err := h.Get(value.Nul, "x"); err == nil {
		t.Error("reading a property of null should fail")
	} else if jsErr, ok := err.(*JSError); !ok || jsErr.Value.ErrorKind != "TypeError" {
		t.Errorf("expected TypeError, got %v", err)
	}
}

func TestGetStringLengthAndIndex(t *testing.T) {
	h := New()
	n, err := h.Get(value.String("abc"), "length")
	if err != nil || n.(value.Number) != 3 {
		t.Errorf("expected length 3, got %v, %v", n, err)
	}
	c, err := h.Get(value.String("abc"), "1")
	if err != nil || c.(value.String) != "b" {
		t.Errorf("expected 'b', got %v, %v", c, err)
	}
}

func TestSetAndGetOwnProperty(t *testing.T) {
	h := New()
	o := value.NewObject(h.ObjectProto)
	if err := h.Set(o, "x", value.Number(1)); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	v, err := h.Get(o, "x")
	if err != nil || v.(value.Number) != 1 {
		t.Errorf("expected 1, got %v, %v", v, err)
	}
}

func TestSetRefusesNonWritable(t *testing.T) {
	h := New()
	o := value.NewObject(h.ObjectProto)
	o.PutOwn("x", value.Number(1), 0) // no writable flag

	err := h.Set(o, "x", value.Number(2))
	if err == nil {
		t.Fatal("expected TypeError writing a non-writable property")
	}
}

func TestArrayLengthInvariant(t *testing.T) {
	h := New()
	arr := h.NewArray()
	if err := h.Set(arr, "0", value.Number(10)); err != nil {
		t.Fatal(err)
	}
	if err := h.Set(arr, "5", value.Number(20)); err != nil {
		t.Fatal(err)
	}
	length, _ := h.Get(arr, "length")
	if length.(value.Number) != 6 {
		t.Errorf("expected length 6 after setting index 5, got %v", length)
	}

	if err := h.Set(arr, "length", value.Number(2)); err != nil {
		t.Fatal(err)
	}
	v, _ := h.Get(arr, "5")
	if v != value.Undef {
		t.Errorf("shrinking length should delete index 5, got %v", v)
	}
}

func TestDeleteRefusesArrayLength(t *testing.T) {
	h := New()
	arr := h.NewArray()
	ok, err := h.Delete(arr, "length")
	if err != nil || ok {
		t.Error("deleting an array's length should refuse")
	}
}

func TestHasFailsOnPrimitive(t *testing.T) {
	h := New()
	if _, err := h.Has(value.Number(1), "x"); err == nil {
		t.Error("'in' on a primitive number should fail")
	}
}

func TestEnumerateKeysSkipsNonEnumerable(t *testing.T) {
	h := New()
	proto := value.NewObject(h.ObjectProto)
	proto.PutOwn("inherited", value.Number(1), value.DefaultAttrs)
	o := value.NewObject(proto)
	o.PutOwn("own", value.Number(2), value.DefaultAttrs)
	o.PutOwn("hidden", value.Number(3), value.AttrWritable|value.AttrConfigurable)

	keys := h.EnumerateKeys(o)
	want := map[string]bool{"own": true, "inherited": true}
	got := map[string]bool{}
	for _, k := range keys {
		got[k] = true
	}
	if len(got) != len(want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
	for k := range want {
		if !got[k] {
			t.Errorf("missing expected key %q in %v", k, keys)
		}
	}
	if got["hidden"] {
		t.Error("non-enumerable own property should be excluded")
	}
}
