package bindings

import (
	"math"
	"time"

	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/value"
)

func installDate(h *heap.Heap) {
	proto := h.DateProto

	wireCtor(h, "Date", proto, 7, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		switch len(args) {
		case 0:
			return value.NewDate(h.DateProto, float64(nowMS())), nil
		case 1:
			if s, ok := args[0].(value.String); ok {
				return value.NewDate(h.DateProto, parseDateString(string(s))), nil
			}
			return value.NewDate(h.DateProto, value.ToNumber(value.NewCycleCtx(), args[0])), nil
		default:
			y := int(value.ToNumber(value.NewCycleCtx(), arg(args, 0)))
			if y >= 0 && y <= 99 {
				y += 1900
			}
			mo := int(value.ToNumber(value.NewCycleCtx(), arg(args, 1)))
			d := 1
			if len(args) > 2 {
				d = int(value.ToNumber(value.NewCycleCtx(), args[2]))
			}
			hh, mm, ss, ms := 0, 0, 0, 0
			if len(args) > 3 {
				hh = int(value.ToNumber(value.NewCycleCtx(), args[3]))
			}
			if len(args) > 4 {
				mm = int(value.ToNumber(value.NewCycleCtx(), args[4]))
			}
			if len(args) > 5 {
				ss = int(value.ToNumber(value.NewCycleCtx(), args[5]))
			}
			if len(args) > 6 {
				ms = int(value.ToNumber(value.NewCycleCtx(), args[6]))
			}
			t := time.Date(y, time.Month(mo+1), d, hh, mm, ss, ms*1e6, time.UTC)
			return value.NewDate(h.DateProto, float64(t.UnixMilli())), nil
		}
	})

	method(h, proto, "getTime", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisDate(h, this)
		if err != nil {
			return nil, err
		}
		return value.Number(o.DateEpochMS), nil
	})

	method(h, proto, "valueOf", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisDate(h, this)
		if err != nil {
			return nil, err
		}
		return value.Number(o.DateEpochMS), nil
	})

	method(h, proto, "setTime", 1, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisDate(h, this)
		if err != nil {
			return nil, err
		}
		o.DateEpochMS = value.ToNumber(value.NewCycleCtx(), arg(args, 0))
		return value.Number(o.DateEpochMS), nil
	})

	dateGetter(h, proto, "getFullYear", func(t time.Time) float64 { return float64(t.Year()) })
	dateGetter(h, proto, "getMonth", func(t time.Time) float64 { return float64(t.Month() - 1) })
	dateGetter(h, proto, "getDate", func(t time.Time) float64 { return float64(t.Day()) })
	dateGetter(h, proto, "getDay", func(t time.Time) float64 { return float64(t.Weekday()) })
	dateGetter(h, proto, "getHours", func(t time.Time) float64 { return float64(t.Hour()) })
	dateGetter(h, proto, "getMinutes", func(t time.Time) float64 { return float64(t.Minute()) })
	dateGetter(h, proto, "getSeconds", func(t time.Time) float64 { return float64(t.Second()) })
	dateGetter(h, proto, "getMilliseconds", func(t time.Time) float64 { return float64(t.Nanosecond() / 1e6) })
	dateGetter(h, proto, "getUTCFullYear", func(t time.Time) float64 { return float64(t.Year()) })
	dateGetter(h, proto, "getUTCMonth", func(t time.Time) float64 { return float64(t.Month() - 1) })
	dateGetter(h, proto, "getUTCDate", func(t time.Time) float64 { return float64(t.Day()) })
	dateGetter(h, proto, "getUTCHours", func(t time.Time) float64 { return float64(t.Hour()) })
	dateGetter(h, proto, "getTimezoneOffset", func(t time.Time) float64 { return 0 })

	method(h, proto, "toString", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisDate(h, this)
		if err != nil {
			return nil, err
		}
		return value.String(value.ToString(value.NewCycleCtx(), o)), nil
	})

	method(h, proto, "toISOString", 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisDate(h, this)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(o.DateEpochMS) {
			return nil, h.Throw("RangeError", "invalid date")
		}
		t := time.UnixMilli(int64(o.DateEpochMS)).UTC()
		return value.String(t.Format("2006-01-02T15:04:05.000Z")), nil
	})
}

func dateGetter(h *heap.Heap, proto *value.Object, name string, extract func(time.Time) float64) {
	method(h, proto, name, 0, func(ctx interface{}, this value.Value, args []value.Value) (value.Value, error) {
		o, err := thisDate(h, this)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(o.DateEpochMS) {
			return value.Number(math.NaN()), nil
		}
		t := time.UnixMilli(int64(o.DateEpochMS)).UTC()
		return value.Number(extract(t)), nil
	})
}

func thisDate(h *heap.Heap, this value.Value) (*value.Object, error) {
	o, ok := this.(*value.Object)
	if !ok || o.Tag != value.TagDate {
		return nil, h.Throw("TypeError", "method called on a non-Date receiver")
	}
	return o, nil
}

func nowMS() int64 {
	return time.Now().UnixMilli()
}

func parseDateString(s string) float64 {
	layouts := []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02", time.RFC1123}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.UnixMilli())
		}
	}
	return math.NaN()
}
