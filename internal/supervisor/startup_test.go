package supervisor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDiscoverStartupSources(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"core.js", "db.js", "test-helpers.js", "notes.txt", "readme.js"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("// "+name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	got, err := DiscoverStartupSources(dir)
	if err != nil {
		t.Fatalf("DiscoverStartupSources: %v", err)
	}
	want := []string{"core.js", "db.js", "test-helpers.js"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListAndLatestSnapshot(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		SnapshotFilename(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		SnapshotFilename(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		SnapshotFilename(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("[]"), 0o644); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}

	list, err := ListSnapshots(dir)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(list))
	}

	latest, ok, err := LatestSnapshot(dir)
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if !ok {
		t.Fatal("expected a latest snapshot")
	}
	want := SnapshotFilename(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if latest != want {
		t.Errorf("got latest %q, want %q", latest, want)
	}
}

func TestLatestSnapshotEmptyDirectory(t *testing.T) {
	_, ok, err := LatestSnapshot(t.TempDir())
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if ok {
		t.Error("expected ok=false for an empty directory")
	}
}

func TestSnapshotFilenameFormat(t *testing.T) {
	name := SnapshotFilename(time.Date(2018, 11, 9, 18, 49, 50, 548_000_000, time.UTC))
	want := "2018-11-09T18.49.50.548Z.city"
	if name != want {
		t.Errorf("got %q, want %q", name, want)
	}
}

func TestParseSnapshotNameInvertsFilename(t *testing.T) {
	ts := time.Date(2018, 11, 9, 18, 49, 50, 548_000_000, time.UTC)
	name := SnapshotFilename(ts)
	got, err := parseSnapshotName(name)
	if err != nil {
		t.Fatalf("parseSnapshotName: %v", err)
	}
	if !got.Equal(ts) {
		t.Errorf("got %v, want %v", got, ts)
	}
}
