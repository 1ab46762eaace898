package bindings

import (
	"regexp"
	"strings"

	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

// installRegExp wires a minimal ES5-subset RegExp on top of Go's own
// regexp package (RE2), rather than a hand-rolled backtracking engine: no
// library in the reference corpus implements ECMAScript-compatible regex
// syntax, so patterns that rely on backreferences or lookaround are simply
// unsupported here. Most ES5 test suites' patterns (character classes,
// quantifiers, alternation, anchors, groups) compile fine under RE2.
func installRegExp(h *heap.Heap) {
	proto := h.RegexProto

	wireCtor(h, "RegExp", proto, 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		if o, ok := arg(args, 0).(*value.Object); ok && o.Tag == value.TagRegex {
			return o, nil
		}
		src := ""
		if _, isUndef := arg(args, 0).(value.Undefined); !isUndef {
			src = value.ToString(value.NewCycleCtx(), arg(args, 0))
		}
		flags := ""
		if len(args) > 1 {
			flags = value.ToString(value.NewCycleCtx(), args[1])
		}
		return newRegex(h, src, flags)
	})

	method(h, proto, "test", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		re, o, err := reFromThis(h, this)
		if err != nil {
			return nil, err
		}
		s := value.ToString(value.NewCycleCtx(), arg(args, 0))
		start := regexStart(o, s)
		if start > len(s) {
			o.RegexLastIndex = 0
			return value.False, nil
		}
		loc := re.FindStringIndex(s[start:])
		if loc == nil {
			o.RegexLastIndex = 0
			return value.False, nil
		}
		if strings.Contains(o.RegexFlags, "g") {
			o.RegexLastIndex = int64(start + loc[1])
		}
		return value.True, nil
	})

	method(h, proto, "exec", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		re, o, err := reFromThis(h, this)
		if err != nil {
			return nil, err
		}
		s := value.ToString(value.NewCycleCtx(), arg(args, 0))
		start := regexStart(o, s)
		if start > len(s) {
			o.RegexLastIndex = 0
			return value.Nul, nil
		}
		m := re.FindStringSubmatchIndex(s[start:])
		if m == nil {
			o.RegexLastIndex = 0
			return value.Nul, nil
		}
		groups := make([]value.Value, len(m)/2)
		for i := range groups {
			lo, hi := m[2*i], m[2*i+1]
			if lo < 0 {
				groups[i] = value.Undef
				continue
			}
			groups[i] = value.String(s[start+lo : start+hi])
		}
		result := h.NewArrayOf(groups...)
		result.PutOwn("index", value.Number(float64(start+m[0])), value.DefaultAttrs)
		result.PutOwn("input", value.String(s), value.DefaultAttrs)
		if strings.Contains(o.RegexFlags, "g") {
			o.RegexLastIndex = int64(start + m[1])
		}
		return result, nil
	})

	method(h, proto, "toString", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisObject(h, this)
		if err != nil {
			return nil, err
		}
		return value.String("/" + o.RegexSource + "/" + o.RegexFlags), nil
	})
}

func newRegex(h *heap.Heap, src, flags string) (*value.Object, error) {
	pattern := src
	if strings.Contains(flags, "i") {
		pattern = "(?i)" + pattern
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return nil, h.Throw("SyntaxError", "invalid regular expression: "+err.Error())
	}
	o := value.NewObject(h.RegexProto)
	o.Tag = value.TagRegex
	o.RegexSource = src
	o.RegexFlags = flags
	o.PutOwn("source", value.String(src), 0)
	o.PutOwn("global", value.Bool(strings.Contains(flags, "g")), 0)
	o.PutOwn("ignoreCase", value.Bool(strings.Contains(flags, "i")), 0)
	o.PutOwn("multiline", value.Bool(strings.Contains(flags, "m")), 0)
	o.PutOwn("lastIndex", value.Number(0), value.AttrWritable)
	return o, nil
}

func reFromThis(h *heap.Heap, this value.Value) (*regexp.Regexp, *value.Object, error) {
	o, ok := this.(*value.Object)
	if !ok || o.Tag != value.TagRegex {
		return nil, nil, h.Throw("TypeError", "method called on a non-RegExp receiver")
	}
	pattern := o.RegexSource
	if strings.Contains(o.RegexFlags, "i") {
		pattern = "(?i)" + pattern
	}
	if strings.Contains(o.RegexFlags, "m") {
		pattern = "(?m)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, nil, h.Throw("SyntaxError", "invalid regular expression: "+err.Error())
	}
	return re, o, nil
}

func reFromArg(h *heap.Heap, v value.Value) (*regexp.Regexp, error) {
	if o, ok := v.(*value.Object); ok && o.Tag == value.TagRegex {
		re, _, err := reFromThis(h, o)
		return re, err
	}
	src := value.ToString(value.NewCycleCtx(), v)
	re, err := regexp.Compile(regexp.QuoteMeta(src))
	if err != nil {
		return nil, h.Throw("SyntaxError", "invalid regular expression: "+err.Error())
	}
	return re, nil
}

func regexStart(o *value.Object, s string) int {
	if !strings.Contains(o.RegexFlags, "g") {
		return 0
	}
	if o.RegexLastIndex < 0 || int(o.RegexLastIndex) > len(s) {
		return len(s) + 1
	}
	return int(o.RegexLastIndex)
}
