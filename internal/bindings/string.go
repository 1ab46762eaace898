package bindings

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

var (
	upperCaser = cases.Upper(language.Und)
	lowerCaser = cases.Lower(language.Und)
)

func installString(h *heap.Heap) {
	proto := h.StringProto

	ctor := wireCtor(h, "String", proto, 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(value.ToString(value.NewCycleCtx(), args[0])), nil
	})

	method(h, ctor, "fromCharCode", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		var b strings.Builder
		for _, a := range args {
			b.WriteRune(rune(int(value.ToNumber(value.NewCycleCtx(), a))))
		}
		return value.String(b.String()), nil
	})

	method(h, proto, "toString", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.String(thisString(this)), nil
	})

	method(h, proto, "valueOf", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.String(thisString(this)), nil
	})

	method(h, proto, "charAt", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := []rune(thisString(this))
		i := int(value.ToNumber(value.NewCycleCtx(), arg(args, 0)))
		if i < 0 || i >= len(s) {
			return value.String(""), nil
		}
		return value.String(string(s[i])), nil
	})

	method(h, proto, "charCodeAt", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := []rune(thisString(this))
		i := int(value.ToNumber(value.NewCycleCtx(), arg(args, 0)))
		if i < 0 || i >= len(s) {
			return value.Number(nan()), nil
		}
		return value.Number(float64(s[i])), nil
	})

	method(h, proto, "indexOf", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := thisString(this)
		sub := value.ToString(value.NewCycleCtx(), arg(args, 0))
		start := 0
		if len(args) > 1 {
			start = clampIndex(int(value.ToNumber(value.NewCycleCtx(), args[1])), len(s))
		}
		if start > len(s) {
			return value.Number(-1), nil
		}
		idx := strings.Index(s[start:], sub)
		if idx < 0 {
			return value.Number(-1), nil
		}
		return value.Number(float64(idx + start)), nil
	})

	method(h, proto, "lastIndexOf", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := thisString(this)
		sub := value.ToString(value.NewCycleCtx(), arg(args, 0))
		return value.Number(float64(strings.LastIndex(s, sub))), nil
	})

	method(h, proto, "slice", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := []rune(thisString(this))
		start, end := sliceBounds(len(s), args)
		if start > end {
			return value.String(""), nil
		}
		return value.String(string(s[start:end])), nil
	})

	method(h, proto, "substring", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := []rune(thisString(this))
		n := len(s)
		start := clampNonNeg(int(value.ToNumber(value.NewCycleCtx(), arg(args, 0))), n)
		end := n
		if len(args) > 1 {
			if _, isUndef := args[1].(value.Undefined); !isUndef {
				end = clampNonNeg(int(value.ToNumber(value.NewCycleCtx(), args[1])), n)
			}
		}
		if start > end {
			start, end = end, start
		}
		return value.String(string(s[start:end])), nil
	})

	method(h, proto, "split", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := thisString(this)
		if _, isUndef := arg(args, 0).(value.Undefined); isUndef {
			return h.NewArrayOf(value.String(s)), nil
		}
		sep := value.ToString(value.NewCycleCtx(), arg(args, 0))
		var parts []string
		if sep == "" {
			for _, r := range s {
				parts = append(parts, string(r))
			}
		} else {
			parts = strings.Split(s, sep)
		}
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.String(p)
		}
		return h.NewArrayOf(out...), nil
	})

	method(h, proto, "concat", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		var b strings.Builder
		b.WriteString(thisString(this))
		for _, a := range args {
			b.WriteString(value.ToString(value.NewCycleCtx(), a))
		}
		return value.String(b.String()), nil
	})

	method(h, proto, "replace", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := thisString(this)
		pattern := value.ToString(value.NewCycleCtx(), arg(args, 0))
		repl := arg(args, 1)
		if fn, ok := repl.(*value.Object); ok && fn.Function != nil {
			idx := strings.Index(s, pattern)
			if idx < 0 {
				return value.String(s), nil
			}
			r, err := cc(ctx).Stepper.CallSync(fn, value.Undef, []value.Value{value.String(pattern), value.Number(float64(idx)), value.String(s)})
			if err != nil {
				return nil, err
			}
			return value.String(s[:idx] + value.ToString(value.NewCycleCtx(), r) + s[idx+len(pattern):]), nil
		}
		return value.String(strings.Replace(s, pattern, value.ToString(value.NewCycleCtx(), repl), 1)), nil
	})

	method(h, proto, "toLowerCase", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.String(lowerCaser.String(thisString(this))), nil
	})
	method(h, proto, "toUpperCase", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.String(upperCaser.String(thisString(this))), nil
	})
	method(h, proto, "toLocaleLowerCase", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.String(lowerCaser.String(thisString(this))), nil
	})
	method(h, proto, "toLocaleUpperCase", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.String(upperCaser.String(thisString(this))), nil
	})

	method(h, proto, "trim", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.String(strings.TrimSpace(thisString(this))), nil
	})

	method(h, proto, "match", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := thisString(this)
		re, err := reFromArg(h, arg(args, 0))
		if err != nil {
			return nil, err
		}
		m := re.FindStringSubmatch(s)
		if m == nil {
			return value.Nul, nil
		}
		out := make([]value.Value, len(m))
		for i, g := range m {
			out[i] = value.String(g)
		}
		return h.NewArrayOf(out...), nil
	})

	method(h, proto, "search", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := thisString(this)
		re, err := reFromArg(h, arg(args, 0))
		if err != nil {
			return nil, err
		}
		loc := re.FindStringIndex(s)
		if loc == nil {
			return value.Number(-1), nil
		}
		return value.Number(float64(loc[0])), nil
	})

	method(h, proto, "localeCompare", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		a := thisString(this)
		b := value.ToString(value.NewCycleCtx(), arg(args, 0))
		switch {
		case a < b:
			return value.Number(-1), nil
		case a > b:
			return value.Number(1), nil
		default:
			return value.Number(0), nil
		}
	})
}

func thisString(this value.Value) string {
	if s, ok := this.(value.String); ok {
		return string(s)
	}
	if o, ok := this.(*value.Object); ok {
		if p, _, ok := o.GetOwn("__primitive__"); ok {
			if s, ok := p.(value.String); ok {
				return string(s)
			}
		}
	}
	return value.ToString(value.NewCycleCtx(), this)
}

func clampNonNeg(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func nan() float64 {
	var zero float64
	return zero / zero
}
