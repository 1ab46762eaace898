package interp

import "github.com/Net-Set/CodeCity/internal/ast"

// handlerFunc is invoked once per Step() call for the top frame; it pushes
// exactly one child frame, advances f's own progress state, or completes
// and pops f, delivering its value to the parent.
type handlerFunc func(s *Stepper, ps *programStack, f *Frame)

var dispatch = map[ast.Kind]handlerFunc{}

func register(k ast.Kind, h handlerFunc) { dispatch[k] = h }
