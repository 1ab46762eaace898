package heap

import "github.com/Net-Set/CodeCity/internal/value"

// Scope is one link of the lexical scope chain: a flat binding table plus a
// parent pointer. Function closures capture the Scope active at their
// creation point; block constructs such as try/catch introduce their own
// short-lived Scope rather than reusing the enclosing one.
type Scope struct {
	vars     map[string]value.Value
	readOnly map[string]bool
	noDelete map[string]bool
	outer    *Scope
}

// NewScope allocates an empty scope parented on outer (nil for the root/
// global scope).
func NewScope(outer *Scope) *Scope {
	return &Scope{
		vars:     make(map[string]value.Value),
		readOnly: make(map[string]bool),
		noDelete: make(map[string]bool),
		outer:    outer,
	}
}

// Outer returns the parent scope, or nil at the chain's root.
func (s *Scope) Outer() *Scope { return s.outer }

// Declare binds name in this scope (not walking outward), overwriting any
// existing binding of the same name. notWritable marks the binding as
// read-only for future Assign calls (used for function parameters'
// "arguments" pseudo-array; catch-clause parameters stay writable).
func (s *Scope) Declare(name string, v value.Value, notWritable bool) {
	s.vars[name] = v
	if notWritable {
		s.readOnly[name] = true
	} else {
		delete(s.readOnly, name)
	}
}

// DeclareProtected binds name like Declare(name, v, false) — ordinary
// assignment still succeeds — but marks the binding non-configurable, so
// DeleteOwn refuses it. Used for host-provided globals (Array, Object,
// console, ...): real JS builtins are writable but DontDelete, a pairing
// notWritable alone can't express since it conflates the two.
func (s *Scope) DeclareProtected(name string, v value.Value) {
	s.vars[name] = v
	delete(s.readOnly, name)
	s.noDelete[name] = true
}

// HasOwn reports whether name is bound directly in this scope, without
// walking to outer scopes.
func (s *Scope) HasOwn(name string) bool {
	_, ok := s.vars[name]
	return ok
}

// Lookup walks the scope chain outward and returns the bound value, or
// ok=false if no scope in the chain binds name.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign walks the scope chain outward and updates the first binding found,
// returning false if the binding is read-only or if no scope binds name at
// all (the caller distinguishes the two via HasBinding).
func (s *Scope) Assign(name string, v value.Value) bool {
	for cur := s; cur != nil; cur = cur.outer {
		if _, ok := cur.vars[name]; ok {
			if cur.readOnly[name] {
				return false
			}
			cur.vars[name] = v
			return true
		}
	}
	return false
}

// HasBinding reports whether name is bound anywhere in the chain, and
// whether that binding is read-only.
func (s *Scope) HasBinding(name string) (found, readOnly bool) {
	for cur := s; cur != nil; cur = cur.outer {
		if _, ok := cur.vars[name]; ok {
			return true, cur.readOnly[name]
		}
	}
	return false, false
}

// DeleteOwn removes name from this scope only if it is present and
// neither read-only nor protected against deletion, reporting whether the
// removal happened. Read-only bindings ("arguments")
// and protected bindings (host-provided globals, declared via
// DeclareProtected) both refuse deletion this way.
func (s *Scope) DeleteOwn(name string) bool {
	if s.readOnly[name] || s.noDelete[name] {
		return false
	}
	if _, ok := s.vars[name]; !ok {
		return false
	}
	delete(s.vars, name)
	return true
}

// Names returns this scope's own binding names in no particular order, used
// by scope-population diagnostics and the snapshot encoder.
func (s *Scope) Names() []string {
	out := make([]string, 0, len(s.vars))
	for k := range s.vars {
		out = append(out, k)
	}
	return out
}

// Get returns this scope's own binding for name, without walking to outer
// scopes, for the snapshot encoder's per-scope entry emission.
func (s *Scope) Get(name string) value.Value { return s.vars[name] }

// IsOwnReadOnly reports whether name, bound directly in this scope, is
// read-only — again without walking the chain, for the same reason.
func (s *Scope) IsOwnReadOnly(name string) bool { return s.readOnly[name] }

// SetOuter rewires this scope's parent pointer. Used only by the snapshot
// decoder, which must allocate every scope as an empty shell before any of
// their outer chains can be linked up (a scope's own record may reference
// an outer scope discovered later in the reachable-object walk).
func (s *Scope) SetOuter(outer *Scope) { s.outer = outer }
