package value

import "time"

// timeFromUnix renders a Unix-second timestamp using a fixed UTC layout
// resembling Date.prototype.toString's output.
func timeFromUnix(sec int64) string {
	return time.Unix(sec, 0).UTC().Format("Mon Jan 02 2006 15:04:05 GMT+0000 (UTC)")
}

// NewDate allocates a Date-tagged Object for the given epoch-millisecond
// value.
func NewDate(proto *Object, epochMS float64) *Object {
	o := NewObject(proto)
	o.Tag = TagDate
	o.DateEpochMS = epochMS
	return o
}
