package bindings

import (
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/value"
)

func installFunction(h *heap.Heap) {
	proto := h.FunctionProto

	wireCtor(h, "Function", proto, 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return nil, h.Throw("EvalError", "the Function constructor is not supported; declare functions in source")
	})

	method(h, proto, "toString", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, ok := this.(*value.Object)
		if !ok || o.Function == nil {
			return value.String("function () { [native code] }"), nil
		}
		return value.String("function " + o.Function.Name + "() { [code] }"), nil
	})

	method(h, proto, "call", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		c := cc(ctx)
		fnThis := arg(args, 0)
		var rest []value.Value
		if len(args) > 1 {
			rest = args[1:]
		}
		return c.Stepper.CallSync(this, fnThis, rest)
	})

	method(h, proto, "apply", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		c := cc(ctx)
		fnThis := arg(args, 0)
		var rest []value.Value
		if arr, ok := arg(args, 1).(*value.Object); ok && arr.Tag == value.TagArray {
			rest = heap.ToSlice(arr)
		}
		return c.Stepper.CallSync(this, fnThis, rest)
	})

	method(h, proto, "bind", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		target, ok := this.(*value.Object)
		if !ok || target.Function == nil {
			return nil, h.Throw("TypeError", "bind called on a non-function")
		}
		boundThis := arg(args, 0)
		var bound []value.Value
		if len(args) > 1 {
			bound = append(bound, args[1:]...)
		}
		impl := func(innerCtx interface{}, _ value.Value, innerArgs []value.Value) (value.Value, error) {
			c := cc(innerCtx)
			return c.Stepper.CallSync(target, boundThis, append(append([]value.Value{}, bound...), innerArgs...))
		}
		name := "bound " + target.Function.Name
		return interp.NewNativeFunction(h, name, target.Function.Arity, impl), nil
	})
}
