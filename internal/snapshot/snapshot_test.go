package snapshot

import (
	"testing"

	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/bindings"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/value"
)

// program builds a tiny, step-in-progress fragment: a var declaration
// followed by an expression statement, enough to populate the global
// scope and leave a live frame on the stack mid-run.
func program() *ast.Node {
	return ast.Program(
		ast.VarDecl(ast.Declarator("x", ast.Num(1))),
		ast.ExprStmt(ast.Assign("=", ast.Ident("x"), ast.Binary("+", ast.Ident("x"), ast.Num(2)))),
	)
}

func newStepper(t *testing.T) (*heap.Heap, *interp.Stepper, *ast.Node) {
	t.Helper()
	h := heap.New()
	s := interp.New(h)
	bindings.Install(h, s)
	root := program()
	s.CreateThreadForSrc(root)
	return h, s, root
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	h, s, root := newStepper(t)

	// Advance a few steps so the snapshot captures live, in-progress frames
	// rather than just the initial pushed Program frame.
	for i := 0; i < 3 && s.Step(); i++ {
	}

	records, err := Encode(h, s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected at least a header record")
	}

	h2 := heap.New()
	s2 := interp.New(h2)
	bindings.Install(h2, s2)
	if err := Decode(records, h2, s2, root); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if s2.NumStacks() != s.NumStacks() {
		t.Errorf("stack count mismatch: got %d, want %d", s2.NumStacks(), s.NumStacks())
	}

	v, ok := h2.Global.Lookup("x")
	if !ok {
		t.Fatal("expected 'x' to survive the round trip in the restored global scope")
	}
	if _, isUndef := v.(value.Undefined); isUndef {
		t.Error("restored 'x' should not be undefined")
	}
}

func TestEncodeIsIdempotent(t *testing.T) {
	h, s, _ := newStepper(t)
	for i := 0; i < 2 && s.Step(); i++ {
	}

	first, err := Encode(h, s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := Encode(h, s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("record counts differ across encodes of the same heap: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("record %d differs across encodes of the same heap:\n%s\nvs\n%s", i, first[i], second[i])
		}
	}
}

func TestWriteTextReadTextRoundTrip(t *testing.T) {
	records := []string{`{"t":"header"}`, `{"t":"object","tag":0}`}
	text := WriteText(records)
	got, err := ReadText(text)
	if err != nil {
		t.Fatalf("ReadText: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
}
