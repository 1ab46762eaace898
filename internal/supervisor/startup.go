package supervisor

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// startupSourcePattern matches the startup-source files loaded (in lexical
// order) when no snapshot exists yet in the database directory.
var startupSourcePattern = regexp.MustCompile(`^(core|db|test).*\.js$`)

// snapshotExt is the on-disk suffix of a checkpoint file.
const snapshotExt = ".city"

// DiscoverStartupSources returns the startup-source files in dir, in
// lexical order, or an empty (non-nil-error) slice if none match.
func DiscoverStartupSources(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, NewBootstrapError("list database directory", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if startupSourcePattern.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ListSnapshots returns every .city file in dir, sorted lexicographically
// (equivalently, by timestamp, given the filename format).
func ListSnapshots(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, NewBootstrapError("list database directory", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), snapshotExt) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// LatestSnapshot returns the most recent snapshot filename in dir, or
// ok=false if the directory holds none.
func LatestSnapshot(dir string) (name string, ok bool, err error) {
	names, err := ListSnapshots(dir)
	if err != nil {
		return "", false, err
	}
	if len(names) == 0 {
		return "", false, nil
	}
	return names[len(names)-1], true, nil
}

// SnapshotFilename renders t as the checkpoint filename format: ISO-8601
// UTC with colons replaced by periods, suffixed .city (e.g.
// "2018-11-09T18.49.50.548Z.city").
func SnapshotFilename(t time.Time) string {
	iso := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.ReplaceAll(iso, ":", ".") + snapshotExt
}
