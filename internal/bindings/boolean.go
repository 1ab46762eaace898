package bindings

import (
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

func installBoolean(h *heap.Heap) {
	proto := h.BooleanProto

	wireCtor(h, "Boolean", proto, 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.Bool(value.ToBoolean(arg(args, 0))), nil
	})

	method(h, proto, "toString", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		if thisBoolean(this) {
			return value.String("true"), nil
		}
		return value.String("false"), nil
	})

	method(h, proto, "valueOf", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.Bool(thisBoolean(this)), nil
	})
}

func thisBoolean(this value.Value) bool {
	if b, ok := this.(value.Boolean); ok {
		return bool(b)
	}
	if o, ok := this.(*value.Object); ok {
		if p, _, ok := o.GetOwn("__primitive__"); ok {
			if b, ok := p.(value.Boolean); ok {
				return bool(b)
			}
		}
	}
	return value.ToBoolean(this)
}
