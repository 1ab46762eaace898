package bindings

import (
	"sort"
	"strings"

	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

func installArray(h *heap.Heap) {
	proto := h.ArrayProto

	ctor := wireCtor(h, "Array", proto, 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 1 {
			if n, ok := args[0].(value.Number); ok {
				ln := uint32(n)
				if float64(ln) != float64(n) {
					return nil, h.Throw("RangeError", "invalid array length")
				}
				a := h.NewArray()
				a.ArrayLength = ln
				return a, nil
			}
		}
		return h.NewArrayOf(args...), nil
	})

	method(h, ctor, "isArray", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, ok := arg(args, 0).(*value.Object)
		return value.Bool(ok && o.Tag == value.TagArray), nil
	})

	method(h, proto, "push", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		for _, a := range args {
			heap.SetArrayElement(o, o.ArrayLength, a)
		}
		return value.Number(float64(o.ArrayLength)), nil
	})

	method(h, proto, "pop", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		if o.ArrayLength == 0 {
			return value.Undef, nil
		}
		idx := o.ArrayLength - 1
		v := heap.ArrayElement(o, idx)
		heap.DeleteArrayElement(o, idx)
		o.ArrayLength = idx
		return v, nil
	})

	method(h, proto, "shift", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		elems := heap.ToSlice(o)
		if len(elems) == 0 {
			return value.Undef, nil
		}
		first := elems[0]
		heap.FromSlice(o, elems[1:])
		return first, nil
	})

	method(h, proto, "unshift", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		elems := append(append([]value.Value{}, args...), heap.ToSlice(o)...)
		heap.FromSlice(o, elems)
		return value.Number(float64(o.ArrayLength)), nil
	})

	method(h, proto, "slice", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		elems := heap.ToSlice(o)
		start, end := sliceBounds(len(elems), args)
		if start > end {
			return h.NewArray(), nil
		}
		return h.NewArrayOf(elems[start:end]...), nil
	})

	method(h, proto, "splice", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		elems := heap.ToSlice(o)
		n := len(elems)
		start := clampIndex(int(value.ToNumber(value.NewCycleCtx(), arg(args, 0))), n)
		deleteCount := n - start
		if len(args) > 1 {
			dc := int(value.ToNumber(value.NewCycleCtx(), arg(args, 1)))
			if dc < 0 {
				dc = 0
			}
			if dc > n-start {
				dc = n - start
			}
			deleteCount = dc
		}
		removed := append([]value.Value{}, elems[start:start+deleteCount]...)
		var inserted []value.Value
		if len(args) > 2 {
			inserted = args[2:]
		}
		result := append([]value.Value{}, elems[:start]...)
		result = append(result, inserted...)
		result = append(result, elems[start+deleteCount:]...)
		heap.FromSlice(o, result)
		return h.NewArrayOf(removed...), nil
	})

	method(h, proto, "concat", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		out := heap.ToSlice(o)
		for _, a := range args {
			if ao, ok := a.(*value.Object); ok && ao.Tag == value.TagArray {
				out = append(out, heap.ToSlice(ao)...)
				continue
			}
			out = append(out, a)
		}
		return h.NewArrayOf(out...), nil
	})

	method(h, proto, "join", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		sep := ","
		if len(args) > 0 {
			sep = value.ToString(value.NewCycleCtx(), args[0])
		}
		parts := make([]string, o.ArrayLength)
		for i, e := range heap.ToSlice(o) {
			switch e.(type) {
			case value.Undefined, value.Null, nil:
				parts[i] = ""
			default:
				parts[i] = value.ToString(value.NewCycleCtx(), e)
			}
		}
		return value.String(strings.Join(parts, sep)), nil
	})

	method(h, proto, "reverse", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		elems := heap.ToSlice(o)
		for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
			elems[i], elems[j] = elems[j], elems[i]
		}
		heap.FromSlice(o, elems)
		return o, nil
	})

	method(h, proto, "indexOf", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		target := arg(args, 0)
		for i, e := range heap.ToSlice(o) {
			if value.StrictEquals(e, target) {
				return value.Number(float64(i)), nil
			}
		}
		return value.Number(-1), nil
	})

	method(h, proto, "lastIndexOf", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		target := arg(args, 0)
		elems := heap.ToSlice(o)
		for i := len(elems) - 1; i >= 0; i-- {
			if value.StrictEquals(elems[i], target) {
				return value.Number(float64(i)), nil
			}
		}
		return value.Number(-1), nil
	})

	method(h, proto, "sort", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		elems := heap.ToSlice(o)
		cmpFn, _ := arg(args, 0).(*value.Object)
		var sortErr error
		sort.SliceStable(elems, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			if cmpFn != nil && cmpFn.Function != nil {
				r, e := cc(ctx).Stepper.CallSync(cmpFn, value.Undef, []value.Value{elems[i], elems[j]})
				if e != nil {
					sortErr = e
					return false
				}
				return value.ToNumber(value.NewCycleCtx(), r) < 0
			}
			return value.ToString(value.NewCycleCtx(), elems[i]) < value.ToString(value.NewCycleCtx(), elems[j])
		})
		if sortErr != nil {
			return nil, sortErr
		}
		heap.FromSlice(o, elems)
		return o, nil
	})

	method(h, proto, "forEach", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		fn, ok := arg(args, 0).(*value.Object)
		if !ok || fn.Function == nil {
			return nil, h.Throw("TypeError", "forEach callback is not a function")
		}
		for i, e := range heap.ToSlice(o) {
			if _, e2 := cc(ctx).Stepper.CallSync(fn, arg(args, 1), []value.Value{e, value.Number(float64(i)), o}); e2 != nil {
				return nil, e2
			}
		}
		return value.Undef, nil
	})

	method(h, proto, "map", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		fn, ok := arg(args, 0).(*value.Object)
		if !ok || fn.Function == nil {
			return nil, h.Throw("TypeError", "map callback is not a function")
		}
		elems := heap.ToSlice(o)
		out := make([]value.Value, len(elems))
		for i, e := range elems {
			r, e2 := cc(ctx).Stepper.CallSync(fn, arg(args, 1), []value.Value{e, value.Number(float64(i)), o})
			if e2 != nil {
				return nil, e2
			}
			out[i] = r
		}
		return h.NewArrayOf(out...), nil
	})

	method(h, proto, "filter", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		fn, ok := arg(args, 0).(*value.Object)
		if !ok || fn.Function == nil {
			return nil, h.Throw("TypeError", "filter callback is not a function")
		}
		var out []value.Value
		for i, e := range heap.ToSlice(o) {
			r, e2 := cc(ctx).Stepper.CallSync(fn, arg(args, 1), []value.Value{e, value.Number(float64(i)), o})
			if e2 != nil {
				return nil, e2
			}
			if value.ToBoolean(r) {
				out = append(out, e)
			}
		}
		return h.NewArrayOf(out...), nil
	})

	method(h, proto, "reduce", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		fn, ok := arg(args, 0).(*value.Object)
		if !ok || fn.Function == nil {
			return nil, h.Throw("TypeError", "reduce callback is not a function")
		}
		elems := heap.ToSlice(o)
		i := 0
		var acc value.Value
		if len(args) > 1 {
			acc = args[1]
		} else {
			if len(elems) == 0 {
				return nil, h.Throw("TypeError", "reduce of empty array with no initial value")
			}
			acc = elems[0]
			i = 1
		}
		for ; i < len(elems); i++ {
			r, e2 := cc(ctx).Stepper.CallSync(fn, value.Undef, []value.Value{acc, elems[i], value.Number(float64(i)), o})
			if e2 != nil {
				return nil, e2
			}
			acc = r
		}
		return acc, nil
	})

	method(h, proto, "some", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		fn, ok := arg(args, 0).(*value.Object)
		if !ok || fn.Function == nil {
			return nil, h.Throw("TypeError", "some callback is not a function")
		}
		for i, e := range heap.ToSlice(o) {
			r, e2 := cc(ctx).Stepper.CallSync(fn, arg(args, 1), []value.Value{e, value.Number(float64(i)), o})
			if e2 != nil {
				return nil, e2
			}
			if value.ToBoolean(r) {
				return value.True, nil
			}
		}
		return value.False, nil
	})

	method(h, proto, "every", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		fn, ok := arg(args, 0).(*value.Object)
		if !ok || fn.Function == nil {
			return nil, h.Throw("TypeError", "every callback is not a function")
		}
		for i, e := range heap.ToSlice(o) {
			r, e2 := cc(ctx).Stepper.CallSync(fn, arg(args, 1), []value.Value{e, value.Number(float64(i)), o})
			if e2 != nil {
				return nil, e2
			}
			if !value.ToBoolean(r) {
				return value.False, nil
			}
		}
		return value.True, nil
	})

	method(h, proto, "toString", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisArray(h, this)
		if err != nil {
			return nil, err
		}
		parts := make([]string, o.ArrayLength)
		for i, e := range heap.ToSlice(o) {
			parts[i] = value.ToString(value.NewCycleCtx(), e)
		}
		return value.String(strings.Join(parts, ",")), nil
	})
}

func thisArray(h *heap.Heap, this value.Value) (*value.Object, error) {
	o, ok := this.(*value.Object)
	if !ok || o.Tag != value.TagArray {
		return nil, h.Throw("TypeError", "method called on a non-array receiver")
	}
	return o, nil
}

// sliceBounds resolves Array.prototype.slice's (start, end) argument pair
// against length n, per the usual negative-counts-from-the-end rule.
func sliceBounds(n int, args []value.Value) (int, int) {
	start := 0
	end := n
	if len(args) > 0 {
		start = clampIndex(int(value.ToNumber(value.NewCycleCtx(), args[0])), n)
	}
	if len(args) > 1 {
		if _, isUndef := args[1].(value.Undefined); !isUndef {
			end = clampIndex(int(value.ToNumber(value.NewCycleCtx(), args[1])), n)
		}
	}
	return start, end
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
