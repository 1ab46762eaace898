// Package snapshot implements the whole-heap serializer and deserializer:
// an ordered list of small tagged records (one per heap Object, Scope, or
// stack Frame) that together let a paused Stepper be reconstructed exactly
// as it was. Records are built and read with sjson/gjson, the same pairing
// internal/bindings uses for JSON.parse/stringify, rather than
// encoding/json — this package's own text IS the on-disk format, so it
// gets the identical incremental-text-construction treatment.
package snapshot

import (
	"github.com/tidwall/sjson"
)

// builder accumulates one record's JSON object field-by-field. Errors are
// captured rather than returned from every call so record-construction code
// reads as a flat sequence of sets; build() surfaces the first failure.
type builder struct {
	text string
	err  error
}

func newBuilder() *builder { return &builder{text: "{}"} }

// set assigns an ordinary value (string, float64, bool, nil, or a slice/map
// of those) at path, letting sjson marshal it.
func (b *builder) set(path string, v interface{}) *builder {
	if b.err != nil {
		return b
	}
	t, err := sjson.Set(b.text, path, v)
	if err != nil {
		b.err = err
		return b
	}
	b.text = t
	return b
}

// setRaw splices already-encoded JSON text (typically another record's
// encode() output, or a value.go tagged-value encoding) in at path.
func (b *builder) setRaw(path, raw string) *builder {
	if b.err != nil {
		return b
	}
	t, err := sjson.SetRaw(b.text, path, raw)
	if err != nil {
		b.err = err
		return b
	}
	b.text = t
	return b
}

func (b *builder) build() (string, error) {
	return b.text, b.err
}
