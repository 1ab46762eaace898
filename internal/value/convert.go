package value

import (
	"math"
	"strconv"
	"strings"
)

// ToBoolean implements the to-boolean coercion: undefined, null, 0,
// NaN, "", and false are falsy; everything else, including every object, is
// truthy.
func ToBoolean(v Value) bool {
	switch vv := v.(type) {
	case Undefined, Null:
		return false
	case Boolean:
		return bool(vv)
	case Number:
		f := float64(vv)
		return f != 0 && !math.IsNaN(f)
	case String:
		return vv != ""
	case *Object:
		return true
	default:
		return true
	}
}

// ToNumber implements the to-number coercion.
func ToNumber(ctx ToStringCtx, v Value) float64 {
	switch vv := v.(type) {
	case Undefined:
		return math.NaN()
	case Null:
		return 0
	case Boolean:
		if vv {
			return 1
		}
		return 0
	case Number:
		return float64(vv)
	case String:
		return stringToNumber(string(vv))
	case *Object:
		return stringToNumber(ToString(ctx, vv))
	default:
		return math.NaN()
	}
}

func stringToNumber(s string) float64 {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0
	}
	if t == "Infinity" || t == "+Infinity" {
		return math.Inf(1)
	}
	if t == "-Infinity" {
		return math.Inf(-1)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		// Hex literals ("0x1F") are not handled by ParseFloat.
		if n, hexErr := strconv.ParseInt(t, 0, 64); hexErr == nil {
			return float64(n)
		}
		return math.NaN()
	}
	return f
}

// ToStringCtx is the minimal host hook ToString needs to call back into the
// interpreter for tag-dispatched object stringification (arrays call
// ToString recursively on elements; that recursion needs cycle tracking,
// which is threaded through this interface rather than a global).
type ToStringCtx interface {
	// Seen reports whether obj is already being stringified higher up the
	// call chain (cycle detection for arrays/errors).
	Seen(obj *Object) bool
	// Enter/Leave bracket a stringification of obj for cycle tracking.
	Enter(obj *Object)
	Leave(obj *Object)
}

// nullCtx is the ToStringCtx NewCycleCtx returns: a plain set of the
// objects currently being stringified, used for cycle detection.
type nullCtx struct{ seen map[*Object]bool }

// NewCycleCtx returns a ToStringCtx usable for a single top-level ToString
// call, tracking cycles across the whole call tree it spawns.
func NewCycleCtx() ToStringCtx { return &nullCtx{seen: map[*Object]bool{}} }

func (c *nullCtx) Seen(o *Object) bool { return c.seen[o] }
func (c *nullCtx) Enter(o *Object)     { c.seen[o] = true }
func (c *nullCtx) Leave(o *Object)     { delete(c.seen, o) }

// NumberToString renders a Number using the canonical decimal form,
// including the "Infinity"/"NaN" spellings.
func NumberToString(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		if math.Signbit(n) {
			return "0"
		}
		return "0"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// ToString implements the to-string coercion, including the tag-dispatched
// object rules and the cycle rule: cycles during array/error to-string
// yield an empty substring at the cycle point.
func ToString(ctx ToStringCtx, v Value) string {
	switch vv := v.(type) {
	case Undefined:
		return "undefined"
	case Null:
		return "null"
	case Boolean:
		if vv {
			return "true"
		}
		return "false"
	case Number:
		return NumberToString(float64(vv))
	case String:
		return string(vv)
	case *Object:
		return objectToString(ctx, vv)
	default:
		return ""
	}
}

func objectToString(ctx ToStringCtx, o *Object) string {
	if ctx.Seen(o) {
		return ""
	}
	ctx.Enter(o)
	defer ctx.Leave(o)

	switch o.Tag {
	case TagArray:
		parts := make([]string, 0, o.ArrayLength)
		for i := uint32(0); i < o.ArrayLength; i++ {
			elem, _, ok := o.GetOwn(strconv.FormatUint(uint64(i), 10))
			if !ok || elem.Kind() == KindUndefined || elem.Kind() == KindNull {
				parts = append(parts, "")
				continue
			}
			parts = append(parts, ToString(ctx, elem))
		}
		return strings.Join(parts, ",")
	case TagError:
		name := "Error"
		if nv, _, ok := o.GetOwn("name"); ok {
			name = ToString(ctx, nv)
		}
		msg := ""
		if mv, _, ok := o.GetOwn("message"); ok {
			msg = ToString(ctx, mv)
		}
		if msg == "" {
			return name
		}
		return name + ": " + msg
	case TagDate:
		return formatDate(o.DateEpochMS)
	case TagRegex:
		return o.RegexSource
	default:
		return "[object]"
	}
}

// formatDate renders a Date's epoch-millisecond slot using the host's
// date-string format; mirrors JS's UTC toString layout closely enough for
// snapshot/golden-test stability without chasing every locale corner of the
// real Date.prototype.toString.
func formatDate(epochMS float64) string {
	if math.IsNaN(epochMS) {
		return "Invalid Date"
	}
	sec := int64(epochMS / 1000)
	t := timeFromUnix(sec)
	return t
}
