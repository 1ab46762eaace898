package supervisor

import (
	"errors"
	"testing"
)

func TestBootstrapErrorWrapsAndUnwraps(t *testing.T) {
	inner := errors.New("disk full")
	err := NewBootstrapError("read config file", inner)
	if !IsBootstrapError(err) {
		t.Error("expected IsBootstrapError to report true")
	}
	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to see through Unwrap to the inner error")
	}
}

func TestSnapshotWriteErrorIsNotASnapshotReadError(t *testing.T) {
	err := NewSnapshotWriteError("/db/x.city", errors.New("disk full"))
	if IsSnapshotReadError(err) {
		t.Error("a write error must not be mistaken for a read error")
	}
	if !IsSnapshotWriteError(err) {
		t.Error("expected IsSnapshotWriteError to report true")
	}
}

func TestUnrecoverableSyntaxErrorMessage(t *testing.T) {
	err := NewUnrecoverableSyntaxError("break outside loop")
	if err.Error() == "" {
		t.Error("expected a non-empty error message")
	}
	if !IsUnrecoverableSyntaxError(err) {
		t.Error("expected IsUnrecoverableSyntaxError to report true")
	}
}
