package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
)

// WriteFile encodes h/s and writes the result to path, via a same-directory
// temp file plus an atomic rename, so a crash or a full disk during the
// write never leaves a half-written file at path: either the rename
// happens and path is the new, complete snapshot, or it doesn't and path
// (if it existed) is untouched. The temp file is removed on any failure
// that prevents the rename.
func WriteFile(path string, h *heap.Heap, s *interp.Stepper) (err error) {
	records, err := Encode(h, s)
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	text := WriteText(records)

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".checkpoint-*.tmp")
	if err != nil {
		return fmt.Errorf("snapshot: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.WriteString(text); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close temp file: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("snapshot: rename into place: %w", err)
	}
	return nil
}

// LoadFile is WriteFile's inverse for startup: it reads path, parses the
// record list, and decodes it into an already-host-bindings-installed h/s
// pair, resolving interpreted functions against roots (the startup source,
// freshly reparsed).
func LoadFile(path string, h *heap.Heap, s *interp.Stepper, roots ...*ast.Node) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	records, err := ReadText(string(data))
	if err != nil {
		return fmt.Errorf("snapshot: parse %s: %w", path, err)
	}
	if err := Decode(records, h, s, roots...); err != nil {
		return fmt.Errorf("snapshot: decode %s: %w", path, err)
	}
	return nil
}
