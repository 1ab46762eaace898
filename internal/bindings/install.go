package bindings

import (
	"math"

	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/value"
)

// Install populates h's global scope and prototype objects with every
// constructor, prototype method, and free function a running program can
// see, plus the host-only extensions (console/system.*) that have no ES5
// syntax of their own. It is the one fixed initialization routine every
// Heap goes through before any user source runs.
func Install(h *heap.Heap, s *interp.Stepper) {
	installObject(h)
	installFunction(h)
	installArray(h)
	installString(h)
	installNumber(h)
	installBoolean(h)
	installDate(h)
	installRegExp(h)
	installErrors(h)
	installMath(h)
	installJSON(h)
	installGlobals(h, s)

	h.Global.Declare("undefined", value.Undef, true)
	h.Global.Declare("NaN", value.Number(math.NaN()), true)
	h.Global.Declare("Infinity", value.Number(math.Inf(1)), true)
}
