package interp

import (
	"math"

	"github.com/Net-Set/CodeCity/internal/value"
)

// evalBinary implements the binary-operator combination rule once both
// operands are known: numeric for arithmetic/bitwise/relational operators,
// string concatenation for "+" when either side is a string, and the
// comparison rule for relational operators.
func evalBinary(ctx value.ToStringCtx, op string, l, r value.Value) (value.Value, error) {
	switch op {
	case "+":
		if _, lIsStr := l.(value.String); lIsStr {
			return value.String(value.ToString(ctx, l) + value.ToString(ctx, r)), nil
		}
		if _, rIsStr := r.(value.String); rIsStr {
			return value.String(value.ToString(ctx, l) + value.ToString(ctx, r)), nil
		}
		ln, rn := value.ToNumber(ctx, l), value.ToNumber(ctx, r)
		return value.Number(ln + rn), nil
	case "-":
		return value.Number(value.ToNumber(ctx, l) - value.ToNumber(ctx, r)), nil
	case "*":
		return value.Number(value.ToNumber(ctx, l) * value.ToNumber(ctx, r)), nil
	case "/":
		return value.Number(value.ToNumber(ctx, l) / value.ToNumber(ctx, r)), nil
	case "%":
		return value.Number(math.Mod(value.ToNumber(ctx, l), value.ToNumber(ctx, r))), nil
	case "&":
		return value.Number(float64(toInt32(value.ToNumber(ctx, l)) & toInt32(value.ToNumber(ctx, r)))), nil
	case "|":
		return value.Number(float64(toInt32(value.ToNumber(ctx, l)) | toInt32(value.ToNumber(ctx, r)))), nil
	case "^":
		return value.Number(float64(toInt32(value.ToNumber(ctx, l)) ^ toInt32(value.ToNumber(ctx, r)))), nil
	case "<<":
		return value.Number(float64(toInt32(value.ToNumber(ctx, l)) << (toUint32(value.ToNumber(ctx, r)) & 31))), nil
	case ">>":
		return value.Number(float64(toInt32(value.ToNumber(ctx, l)) >> (toUint32(value.ToNumber(ctx, r)) & 31))), nil
	case ">>>":
		return value.Number(float64(toUint32(value.ToNumber(ctx, l)) >> (toUint32(value.ToNumber(ctx, r)) & 31))), nil
	case "<":
		return value.Boolean(value.Compare(ctx, l, r) == value.Less), nil
	case ">":
		return value.Boolean(value.Compare(ctx, l, r) == value.Greater), nil
	case "<=":
		o := value.Compare(ctx, l, r)
		return value.Boolean(o == value.Less || o == value.Equal), nil
	case ">=":
		o := value.Compare(ctx, l, r)
		return value.Boolean(o == value.Greater || o == value.Equal), nil
	case "==":
		return value.Boolean(value.LooseEquals(ctx, l, r)), nil
	case "!=":
		return value.Boolean(!value.LooseEquals(ctx, l, r)), nil
	case "===":
		return value.Boolean(value.StrictEquals(l, r)), nil
	case "!==":
		return value.Boolean(!value.StrictEquals(l, r)), nil
	case "instanceof":
		return evalInstanceof(l, r)
	case "in":
		return value.Undef, nil // handled in handleBinary, which has the heap
	}
	return value.Undef, nil
}

func evalInstanceof(l, r value.Value) (value.Value, error) {
	fn, ok := r.(*value.Object)
	if !ok || fn.Tag != value.TagFunction {
		return value.Undef, nil
	}
	obj, ok := l.(*value.Object)
	if !ok {
		return value.False, nil
	}
	proto, _, _ := fn.GetOwn("prototype")
	protoObj, _ := proto.(*value.Object)
	for cur := obj.Prototype; cur != nil; cur = cur.Prototype {
		if cur == protoObj {
			return value.True, nil
		}
	}
	return value.False, nil
}

func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	u := toUint32(f)
	return int32(u)
}

func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	n := int64(math.Trunc(f))
	return uint32(n)
}

// evalUnary implements the unary-operator rule for every operator except
// "delete" and "typeof", which need reference/scope access handled in the
// statement/expression handlers directly.
func evalUnary(ctx value.ToStringCtx, op string, v value.Value) value.Value {
	switch op {
	case "-":
		return value.Number(-value.ToNumber(ctx, v))
	case "+":
		return value.Number(value.ToNumber(ctx, v))
	case "!":
		return value.Boolean(!value.ToBoolean(v))
	case "~":
		return value.Number(float64(^toInt32(value.ToNumber(ctx, v))))
	case "void":
		return value.Undef
	}
	return value.Undef
}

func typeOf(v value.Value) string {
	switch vv := v.(type) {
	case value.Undefined:
		return "undefined"
	case value.Null:
		return "object"
	case value.Boolean:
		return "boolean"
	case value.Number:
		return "number"
	case value.String:
		return "string"
	case *value.Object:
		if vv.Tag == value.TagFunction {
			return "function"
		}
		return "object"
	}
	return "undefined"
}
