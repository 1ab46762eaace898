package bindings

import (
	"math"
	"strconv"

	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

func installNumber(h *heap.Heap) {
	proto := h.NumberProto

	ctor := wireCtor(h, "Number", proto, 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(0), nil
		}
		return value.Number(value.ToNumber(value.NewCycleCtx(), args[0])), nil
	})

	ctor.PutOwn("MAX_VALUE", value.Number(math.MaxFloat64), 0)
	ctor.PutOwn("MIN_VALUE", value.Number(math.SmallestNonzeroFloat64), 0)
	ctor.PutOwn("NaN", value.Number(math.NaN()), 0)
	ctor.PutOwn("POSITIVE_INFINITY", value.Number(math.Inf(1)), 0)
	ctor.PutOwn("NEGATIVE_INFINITY", value.Number(math.Inf(-1)), 0)

	method(h, proto, "toString", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		n := thisNumber(this)
		radix := 10
		if len(args) > 0 {
			if _, isUndef := args[0].(value.Undefined); !isUndef {
				radix = int(value.ToNumber(value.NewCycleCtx(), args[0]))
			}
		}
		if radix == 10 {
			return value.String(value.ToString(value.NewCycleCtx(), value.Number(n))), nil
		}
		if n != math.Trunc(n) || math.IsNaN(n) || math.IsInf(n, 0) {
			return value.String(value.ToString(value.NewCycleCtx(), value.Number(n))), nil
		}
		return value.String(strconv.FormatInt(int64(n), radix)), nil
	})

	method(h, proto, "valueOf", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.Number(thisNumber(this)), nil
	})

	method(h, proto, "toFixed", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		n := thisNumber(this)
		digits := 0
		if len(args) > 0 {
			digits = int(value.ToNumber(value.NewCycleCtx(), args[0]))
		}
		return value.String(strconv.FormatFloat(n, 'f', digits, 64)), nil
	})

	method(h, proto, "toPrecision", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		n := thisNumber(this)
		if len(args) == 0 {
			return value.String(value.ToString(value.NewCycleCtx(), value.Number(n))), nil
		}
		prec := int(value.ToNumber(value.NewCycleCtx(), args[0]))
		return value.String(strconv.FormatFloat(n, 'g', prec, 64)), nil
	})
}

func thisNumber(this value.Value) float64 {
	if n, ok := this.(value.Number); ok {
		return float64(n)
	}
	if o, ok := this.(*value.Object); ok {
		if p, _, ok := o.GetOwn("__primitive__"); ok {
			if n, ok := p.(value.Number); ok {
				return float64(n)
			}
		}
	}
	return value.ToNumber(value.NewCycleCtx(), this)
}
