package interp

import "github.com/Net-Set/CodeCity/internal/ast"

// Logger is the narrow sink host bindings write to for console/system.log
// output. Implemented by the supervisor so a running program's logging goes
// through the same destination as the process's own lifecycle messages.
type Logger interface {
	Printf(format string, args ...interface{})
}

// Hooks carries everything a CallContext needs to reach outside the
// Stepper/Heap pair: the injected parser (for a host-exposed meta-parse
// function), and the process-lifecycle entry points (checkpoint-now,
// shutdown) that only the part of the program wiring up the Supervisor can
// actually provide. A Stepper built without a Supervisor (as in tests) can
// leave Hooks nil; bindings that need it raise an EvalError instead of a
// nil-pointer panic.
type Hooks struct {
	Parser     ast.Parser
	Logger     Logger
	Checkpoint func() error
	Shutdown   func(code int)
}
