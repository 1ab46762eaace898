package supervisor

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Net-Set/CodeCity/internal/ast"
)

// stubParser ignores the source text and always returns the same
// builder-constructed program, standing in for the external grammar
// collaborator this module does not implement.
type stubParser struct {
	root *ast.Node
}

func (p *stubParser) Parse(src string) (*ast.Node, error) {
	return p.root, nil
}

func TestBootstrapLoadsStartupSourcesWhenNoSnapshotExists(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "core.js"), []byte("var x = 1;"), 0o644); err != nil {
		t.Fatalf("write startup source: %v", err)
	}

	root := ast.Program(ast.VarDecl(ast.Declarator("x", ast.Num(1))))
	cfg := Config{DatabaseDirectory: dir, CheckpointAtShutdown: false}
	sup := New(cfg, &stubParser{root: root}, &bytes.Buffer{})

	if err := sup.Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if sup.Stepper.NumStacks() != 1 {
		t.Errorf("expected one program stack loaded, got %d", sup.Stepper.NumStacks())
	}
}

func TestBootstrapFailsWithoutParserWhenNoSnapshotExists(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "core.js"), []byte("var x = 1;"), 0o644); err != nil {
		t.Fatalf("write startup source: %v", err)
	}

	cfg := Config{DatabaseDirectory: dir}
	sup := New(cfg, nil, &bytes.Buffer{})
	if err := sup.Bootstrap(); err == nil {
		t.Fatal("expected Bootstrap to fail without a registered parser")
	} else if !IsBootstrapError(err) {
		t.Errorf("expected a BootstrapError, got %T", err)
	}
}

func TestBootstrapFailsOnMissingDirectory(t *testing.T) {
	cfg := Config{DatabaseDirectory: filepath.Join(t.TempDir(), "does-not-exist")}
	sup := New(cfg, nil, &bytes.Buffer{})
	if err := sup.Bootstrap(); err == nil {
		t.Fatal("expected Bootstrap to fail for a missing database directory")
	}
}

func TestCheckpointWritesSnapshotAndRunsRetention(t *testing.T) {
	dir := t.TempDir()
	root := ast.Program(ast.VarDecl(ast.Declarator("x", ast.Num(1))))
	cfg := Config{DatabaseDirectory: dir, CheckpointMinFiles: 5}
	sup := New(cfg, &stubParser{root: root}, &bytes.Buffer{})
	sup.Stepper.CreateThreadForSrc(root)

	if err := sup.Checkpoint(); err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}

	names, err := ListSnapshots(dir)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("expected 1 snapshot on disk, got %d", len(names))
	}
}

func TestParseSnapshotNameRejectsGarbage(t *testing.T) {
	if _, err := parseSnapshotName("not-a-snapshot.city"); err == nil {
		t.Error("expected an error for a malformed snapshot filename")
	}
}
