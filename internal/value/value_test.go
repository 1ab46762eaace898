package value

import "testing"

func TestToBoolean(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{Undef, false},
		{Nul, false},
		{Number(0), false},
		{Number(1), true},
		{String(""), false},
		{String("0"), true},
		{Boolean(false), false},
		{NewObject(nil), true},
	}
	for _, c := range cases {
		if got := ToBoolean(c.v); got != c.want {
			t.Errorf("ToBoolean(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestToNumber(t *testing.T) {
	ctx := NewCycleCtx()
	if n := ToNumber(ctx, String("  42  ")); n != 42 {
		t.Errorf("ToNumber(\"  42  \") = %v, want 42", n)
	}
	if n := ToNumber(ctx, Nul); n != 0 {
		t.Errorf("ToNumber(null) = %v, want 0", n)
	}
	if n := ToNumber(ctx, Undef); n == n {
		t.Errorf("ToNumber(undefined) should be NaN, got %v", n)
	}
	if n := ToNumber(ctx, Boolean(true)); n != 1 {
		t.Errorf("ToNumber(true) = %v, want 1", n)
	}
}

func TestArrayToStringCycle(t *testing.T) {
	arr := NewObject(nil)
	arr.Tag = TagArray
	arr.ArrayLength = 1
	arr.PutOwn("0", arr, DefaultAttrs)

	ctx := NewCycleCtx()
	got := ToString(ctx, arr)
	if got != "" {
		t.Errorf("cyclic array to-string = %q, want empty substring at cycle point", got)
	}
}

func TestStrictVsLooseEquals(t *testing.T) {
	ctx := NewCycleCtx()
	a := NewObject(nil)
	b := NewObject(nil)
	a.PutOwn("x", Number(1), DefaultAttrs)
	b.PutOwn("x", Number(1), DefaultAttrs)

	if LooseEquals(ctx, a, b) {
		t.Error("two distinct objects should never be loosely equal, even with identical shape")
	}
	if !LooseEquals(ctx, a, a) {
		t.Error("an object should be loosely equal to itself")
	}
	if StrictEquals(a, b) {
		t.Error("two distinct objects should not be strictly equal")
	}
	if !LooseEquals(ctx, String("1"), Number(1)) {
		t.Error("\"1\" == 1 should be true")
	}
	if StrictEquals(String("1"), Number(1)) {
		t.Error("\"1\" === 1 should be false")
	}
}

func TestCompareNaN(t *testing.T) {
	ctx := NewCycleCtx()
	if got := Compare(ctx, Number(nan()), Number(1)); got != Incomparable {
		t.Errorf("Compare(NaN, 1) = %v, want Incomparable", got)
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
