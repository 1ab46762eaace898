package bindings

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/value"
)

// installGlobals wires the free-standing functions every program sees at
// the top level: eval(), the ES5 numeric-coercion helpers, the URI escape
// family, and the three host-lifecycle extensions (logging, checkpoint,
// shutdown) plus the hashing primitive and meta-parse functions, none of
// which have ES5 syntax of their own.
func installGlobals(h *heap.Heap, s *interp.Stepper) {
	nativeFn := func(name string, arity int, impl value.NativeImpl) {
		global(h, name, interp.NewNativeFunction(h, name, arity, impl))
	}

	global(h, "eval", interp.NewEvalFunction(h))

	nativeFn("isNaN", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		n := value.ToNumber(value.NewCycleCtx(), arg(args, 0))
		return value.Bool(math.IsNaN(n)), nil
	})

	nativeFn("isFinite", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		n := value.ToNumber(value.NewCycleCtx(), arg(args, 0))
		return value.Bool(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
	})

	nativeFn("parseInt", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := strings.TrimSpace(value.ToString(value.NewCycleCtx(), arg(args, 0)))
		radix := 0
		if len(args) > 1 {
			radix = int(value.ToNumber(value.NewCycleCtx(), args[1]))
		}
		return value.Number(parseIntJS(s, radix)), nil
	})

	nativeFn("parseFloat", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		s := strings.TrimSpace(value.ToString(value.NewCycleCtx(), arg(args, 0)))
		return value.Number(parseFloatJS(s)), nil
	})

	nativeFn("encodeURIComponent", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.String(url.QueryEscape(value.ToString(value.NewCycleCtx(), arg(args, 0)))), nil
	})
	nativeFn("decodeURIComponent", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		out, err := url.QueryUnescape(value.ToString(value.NewCycleCtx(), arg(args, 0)))
		if err != nil {
			return nil, h.Throw("URIError", "malformed URI sequence")
		}
		return value.String(out), nil
	})
	nativeFn("encodeURI", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		return value.String((&url.URL{Path: value.ToString(value.NewCycleCtx(), arg(args, 0))}).EscapedPath()), nil
	})
	nativeFn("decodeURI", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		out, err := url.PathUnescape(value.ToString(value.NewCycleCtx(), arg(args, 0)))
		if err != nil {
			return nil, h.Throw("URIError", "malformed URI sequence")
		}
		return value.String(out), nil
	})

	console := value.NewObject(h.ObjectProto)
	global(h, "console", console)
	method(h, console, "log", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		writeLog(cc(ctx), args)
		return value.Undef, nil
	})
	method(h, console, "error", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		writeLog(cc(ctx), args)
		return value.Undef, nil
	})

	system := value.NewObject(h.ObjectProto)
	global(h, "system", system)

	method(h, system, "log", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		writeLog(cc(ctx), args)
		return value.Undef, nil
	})

	method(h, system, "checkpoint", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		hooks := cc(ctx).Hooks()
		if hooks == nil || hooks.Checkpoint == nil {
			return nil, h.Throw("EvalError", "checkpoint is not available in this environment")
		}
		if err := hooks.Checkpoint(); err != nil {
			return nil, h.Throw("EvalError", "checkpoint failed: "+err.Error())
		}
		return value.Undef, nil
	})

	method(h, system, "shutdown", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		hooks := cc(ctx).Hooks()
		if hooks == nil || hooks.Shutdown == nil {
			return nil, h.Throw("EvalError", "shutdown is not available in this environment")
		}
		code := int(value.ToNumber(value.NewCycleCtx(), arg(args, 0)))
		hooks.Shutdown(code)
		return value.Undef, nil
	})

	method(h, system, "hash", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		algo := strings.ToLower(value.ToString(value.NewCycleCtx(), arg(args, 0)))
		data := value.ToString(value.NewCycleCtx(), arg(args, 1))
		digest, ok := hashDigest(algo, data)
		if !ok {
			return nil, h.Throw("RangeError", "unsupported hash algorithm: "+algo)
		}
		return value.String(digest), nil
	})

	method(h, system, "parse", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		hooks := cc(ctx).Hooks()
		if hooks == nil || hooks.Parser == nil {
			return nil, h.Throw("EvalError", "parse is not available in this environment")
		}
		src := value.ToString(value.NewCycleCtx(), arg(args, 0))
		node, err := hooks.Parser.Parse(src)
		if err != nil {
			return nil, h.Throw("SyntaxError", err.Error())
		}
		return astNodeDescription(h, node), nil
	})

	method(h, system, "parseExpressionAt", 2, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		hooks := cc(ctx).Hooks()
		if hooks == nil || hooks.Parser == nil {
			return nil, h.Throw("EvalError", "parseExpressionAt is not available in this environment")
		}
		src := value.ToString(value.NewCycleCtx(), arg(args, 0))
		offset := int(value.ToNumber(value.NewCycleCtx(), arg(args, 1)))
		if offset < 0 || offset > len(src) {
			return nil, h.Throw("RangeError", "offset out of range")
		}
		node, err := hooks.Parser.Parse(src[offset:])
		if err != nil {
			return nil, h.Throw("SyntaxError", err.Error())
		}
		return astNodeDescription(h, node), nil
	})
}

func writeLog(c *interp.CallContext, args []value.Value) {
	hooks := c.Hooks()
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = value.ToString(value.NewCycleCtx(), a)
	}
	line := strings.Join(parts, " ")
	if hooks != nil && hooks.Logger != nil {
		hooks.Logger.Printf("%s", line)
		return
	}
	fmt.Println(line)
}

// astNodeDescription renders a parsed syntax tree as a shallow object
// exposing its root kind and node id — a meta-parse caller inspects
// the shape of what was parsed, not a full reflected AST.
func astNodeDescription(h *heap.Heap, n *ast.Node) value.Value {
	if n == nil {
		return value.Nul
	}
	o := value.NewObject(h.ObjectProto)
	o.PutOwn("kind", value.String(n.Kind.String()), value.DefaultAttrs)
	o.PutOwn("id", value.Number(float64(n.ID)), value.DefaultAttrs)
	return o
}

func hashDigest(algo, data string) (string, bool) {
	switch algo {
	case "md5":
		sum := md5.Sum([]byte(data))
		return hex.EncodeToString(sum[:]), true
	case "sha1":
		sum := sha1.Sum([]byte(data))
		return hex.EncodeToString(sum[:]), true
	case "sha256":
		sum := sha256.Sum256([]byte(data))
		return hex.EncodeToString(sum[:]), true
	case "sha512":
		sum := sha512.Sum512([]byte(data))
		return hex.EncodeToString(sum[:]), true
	default:
		return "", false
	}
}

func parseIntJS(s string, radix int) float64 {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if radix == 0 {
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			radix = 16
			s = s[2:]
		} else {
			radix = 10
		}
	} else if radix == 16 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		s = s[2:]
	}
	end := 0
	for end < len(s) && digitValue(s[end]) < radix {
		end++
	}
	if end == 0 {
		return math.NaN()
	}
	n, err := strconv.ParseInt(s[:end], radix, 64)
	if err != nil {
		// overflow: fall back to float accumulation
		var f float64
		for i := 0; i < end; i++ {
			f = f*float64(radix) + float64(digitValue(s[i]))
		}
		if neg {
			f = -f
		}
		return f
	}
	if neg {
		n = -n
	}
	return float64(n)
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 99
	}
}

func parseFloatJS(s string) float64 {
	end := len(s)
	for end > 0 {
		if _, err := strconv.ParseFloat(s[:end], 64); err == nil {
			v, _ := strconv.ParseFloat(s[:end], 64)
			return v
		}
		end--
	}
	return math.NaN()
}
