package bindings

import (
	"math"
	"math/rand"

	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

// installMath populates the Math free-standing object. Math.random draws
// from a process-wide generator; a running program's output from it is not
// expected to survive a snapshot/restore cycle byte-for-byte, the same way
// the host's wall clock doesn't.
func installMath(h *heap.Heap) {
	obj := value.NewObject(h.ObjectProto)
	global(h, "Math", obj)

	obj.PutOwn("E", value.Number(math.E), 0)
	obj.PutOwn("PI", value.Number(math.Pi), 0)
	obj.PutOwn("LN2", value.Number(math.Ln2), 0)
	obj.PutOwn("LN10", value.Number(math.Log(10)), 0)
	obj.PutOwn("LOG2E", value.Number(1/math.Ln2), 0)
	obj.PutOwn("LOG10E", value.Number(1/math.Log(10)), 0)
	obj.PutOwn("SQRT2", value.Number(math.Sqrt2), 0)
	obj.PutOwn("SQRT1_2", value.Number(math.Sqrt(0.5)), 0)

	unary := func(name string, fn func(float64) float64) {
		method(h, obj, name, 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
			return value.Number(fn(value.ToNumber(value.NewCycleCtx(), arg(args, 0)))), nil
		})
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("sqrt", math.Sqrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("asin", math.Asin)
	unary("acos", math.Acos)
	unary("atan", math.Atan)
	unary("exp", math.Exp)
	unary("log", math.Log)

	method(h, obj, "round", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		n := value.ToNumber(value.NewCycleCtx(), arg(args, 0))
		return value.Number(math.Floor(n + 0.5)), nil
	})

	method(h, obj, "pow", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		base := value.ToNumber(value.NewCycleCtx(), arg(args, 0))
		exp := value.ToNumber(value.NewCycleCtx(), arg(args, 1))
		return value.Number(math.Pow(base, exp)), nil
	})

	method(h, obj, "atan2", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		y := value.ToNumber(value.NewCycleCtx(), arg(args, 0))
		x := value.ToNumber(value.NewCycleCtx(), arg(args, 1))
		return value.Number(math.Atan2(y, x)), nil
	})

	method(h, obj, "max", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(math.Inf(-1)), nil
		}
		m := math.Inf(-1)
		for _, a := range args {
			n := value.ToNumber(value.NewCycleCtx(), a)
			if math.IsNaN(n) {
				return value.Number(math.NaN()), nil
			}
			if n > m {
				m = n
			}
		}
		return value.Number(m), nil
	})

	method(h, obj, "min", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(math.Inf(1)), nil
		}
		m := math.Inf(1)
		for _, a := range args {
			n := value.ToNumber(value.NewCycleCtx(), a)
			if math.IsNaN(n) {
				return value.Number(math.NaN()), nil
			}
			if n < m {
				m = n
			}
		}
		return value.Number(m), nil
	})

	method(h, obj, "random", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.Number(rand.Float64()), nil
	})
}
