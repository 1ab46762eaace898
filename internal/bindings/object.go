package bindings

import (
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

func installObject(h *heap.Heap) {
	proto := h.ObjectProto

	ctor := wireCtor(h, "Object", proto, 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		a := arg(args, 0)
		if o, ok := a.(*value.Object); ok {
			return o, nil
		}
		if _, isUndef := a.(value.Undefined); isUndef {
			return value.NewObject(h.ObjectProto), nil
		}
		if _, isNull := a.(value.Null); isNull {
			return value.NewObject(h.ObjectProto), nil
		}
		boxed := value.NewObject(protoForPrimitive(h, a))
		boxed.PutOwn("__primitive__", a, 0)
		return boxed, nil
	})

	method(h, proto, "toString", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		tag := "Object"
		if o, ok := this.(*value.Object); ok {
			switch o.Tag {
			case value.TagArray:
				tag = "Array"
			case value.TagFunction:
				tag = "Function"
			case value.TagError:
				tag = "Error"
			case value.TagDate:
				tag = "Date"
			case value.TagRegex:
				tag = "RegExp"
			}
		}
		return value.String("[object " + tag + "]"), nil
	})

	method(h, proto, "valueOf", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return this, nil
	})

	method(h, proto, "hasOwnProperty", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisObject(h, this)
		if err != nil {
			return nil, err
		}
		name := value.ToString(value.NewCycleCtx(), arg(args, 0))
		if o.Tag == value.TagArray {
			if name == "length" {
				return value.True, nil
			}
		}
		return value.Bool(o.HasOwn(name)), nil
	})

	method(h, proto, "isPrototypeOf", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisObject(h, this)
		if err != nil {
			return nil, err
		}
		target, ok := arg(args, 0).(*value.Object)
		if !ok {
			return value.False, nil
		}
		for cur := target.Prototype; cur != nil; cur = cur.Prototype {
			if cur == o {
				return value.True, nil
			}
		}
		return value.False, nil
	})

	method(h, proto, "propertyIsEnumerable", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisObject(h, this)
		if err != nil {
			return nil, err
		}
		name := value.ToString(value.NewCycleCtx(), arg(args, 0))
		_, attrs, ok := o.GetOwn(name)
		return value.Bool(ok && attrs.Enumerable()), nil
	})

	// Static methods. Object.keys/Object.create cover what the language's
	// own for-in and literal syntax can't express (an explicit, order-
	// preserving own-enumerable-key snapshot; prototype-only inheritance).
	method(h, ctor, "keys", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, ok := arg(args, 0).(*value.Object)
		if !ok {
			return nil, h.Throw("TypeError", "Object.keys called on non-object")
		}
		var keys []value.Value
		for _, k := range o.OwnKeys() {
			if _, attrs, exists := o.GetOwn(k); exists && attrs.Enumerable() {
				keys = append(keys, value.String(k))
			}
		}
		return h.NewArrayOf(keys...), nil
	})

	method(h, ctor, "create", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		var proto *value.Object
		switch p := arg(args, 0).(type) {
		case *value.Object:
			proto = p
		case value.Null:
			proto = nil
		default:
			return nil, h.Throw("TypeError", "Object prototype may only be an Object or null")
		}
		return value.NewObject(proto), nil
	})

	method(h, ctor, "getPrototypeOf", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, ok := arg(args, 0).(*value.Object)
		if !ok {
			return nil, h.Throw("TypeError", "Object.getPrototypeOf called on non-object")
		}
		if o.Prototype == nil {
			return value.Null{}, nil
		}
		return o.Prototype, nil
	})

	method(h, ctor, "freeze", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		if o, ok := arg(args, 0).(*value.Object); ok {
			o.PreventExtensions()
			for _, k := range o.OwnKeys() {
				v, attrs, _ := o.GetOwn(k)
				var frozen value.Attrs
				if attrs.Enumerable() {
					frozen = value.AttrEnumerable
				}
				o.PutOwn(k, v, frozen)
			}
		}
		return arg(args, 0), nil
	})
}

func protoForPrimitive(h *heap.Heap, v value.Value) *value.Object {
	switch v.(type) {
	case value.String:
		return h.StringProto
	case value.Number:
		return h.NumberProto
	case value.Boolean:
		return h.BooleanProto
	default:
		return h.ObjectProto
	}
}
