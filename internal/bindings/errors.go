package bindings

import (
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

// installErrors wires the base Error constructor and its six ES5 subkinds
// onto the prototypes the Heap's error-throwing machinery already chains
// (see heap.New's errorKinds), so a thrown host error and a user's own `new
// TypeError(...)` share one prototype per kind.
func installErrors(h *heap.Heap) {
	for _, kind := range []string{"Error", "EvalError", "RangeError", "ReferenceError", "SyntaxError", "TypeError", "URIError"} {
		proto := h.ErrorProtos[kind]
		k := kind
		wireCtor(h, k, proto, 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
			msg := ""
			if _, isUndef := arg(args, 0).(value.Undefined); !isUndef {
				msg = value.ToString(value.NewCycleCtx(), arg(args, 0))
			}
			return h.NewError(k, msg), nil
		})
	}

	method(h, h.ErrorProtos["Error"], "toString", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisObject(h, this)
		if err != nil {
			return nil, err
		}
		name := "Error"
		if nv, _, ok := o.GetOwn("name"); ok {
			name = value.ToString(value.NewCycleCtx(), nv)
		}
		msg := ""
		if mv, _, ok := o.GetOwn("message"); ok {
			msg = value.ToString(value.NewCycleCtx(), mv)
		}
		if msg == "" {
			return value.String(name), nil
		}
		return value.String(name + ": " + msg), nil
	})
}
