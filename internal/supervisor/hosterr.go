package supervisor

import (
	"errors"
	"fmt"
)

// Host-level failure categories, per the error-handling design's distinction
// between language-level Error objects (catchable by user code, built by
// internal/heap) and these — failures that bubble out of the supervisor
// itself and are never visible to a running program. One struct per
// category, each with a New*Error constructor and an Is*Error predicate,
// grounded on a runtime error hierarchy pattern
// (ConversionError/IndexError/...).

// BootstrapError covers missing config, an unreadable or unparseable
// config file, or missing startup sources — anything that prevents a
// supervisor from reaching its first step at all.
type BootstrapError struct {
	Stage string
	Err   error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("bootstrap failed at %s: %v", e.Stage, e.Err)
}

func (e *BootstrapError) Unwrap() error { return e.Err }

// NewBootstrapError wraps err with the bootstrap stage it occurred during.
func NewBootstrapError(stage string, err error) error {
	return &BootstrapError{Stage: stage, Err: err}
}

// IsBootstrapError reports whether err is (or wraps) a BootstrapError.
func IsBootstrapError(err error) bool {
	var be *BootstrapError
	return errors.As(err, &be)
}

// SnapshotWriteError covers a checkpoint that failed to serialize or write;
// the supervisor logs it and resumes stepping rather than treating it as
// fatal, since the runtime state itself is unaffected.
type SnapshotWriteError struct {
	Path string
	Err  error
}

func (e *SnapshotWriteError) Error() string {
	return fmt.Sprintf("checkpoint write to %s failed: %v", e.Path, e.Err)
}

func (e *SnapshotWriteError) Unwrap() error { return e.Err }

func NewSnapshotWriteError(path string, err error) error {
	return &SnapshotWriteError{Path: path, Err: err}
}

func IsSnapshotWriteError(err error) bool {
	_, ok := err.(*SnapshotWriteError)
	return ok
}

// SnapshotReadError covers a startup load failure; always fatal.
type SnapshotReadError struct {
	Path string
	Err  error
}

func (e *SnapshotReadError) Error() string {
	return fmt.Sprintf("snapshot read from %s failed: %v", e.Path, e.Err)
}

func (e *SnapshotReadError) Unwrap() error { return e.Err }

func NewSnapshotReadError(path string, err error) error {
	return &SnapshotReadError{Path: path, Err: err}
}

func IsSnapshotReadError(err error) bool {
	_, ok := err.(*SnapshotReadError)
	return ok
}

// UnrecoverableSyntaxError covers the host-level "this can never be valid
// user code" failures (illegal break/continue/return target, with-statement,
// malformed function body) that propagate out of a step and can never be
// caught by user code, unlike a language-level Error.
type UnrecoverableSyntaxError struct {
	Detail string
}

func (e *UnrecoverableSyntaxError) Error() string {
	return fmt.Sprintf("unrecoverable syntax error: %s", e.Detail)
}

func NewUnrecoverableSyntaxError(detail string) error {
	return &UnrecoverableSyntaxError{Detail: detail}
}

func IsUnrecoverableSyntaxError(err error) bool {
	_, ok := err.(*UnrecoverableSyntaxError)
	return ok
}
