// Package supervisor is the process that owns a Heap/Stepper pair end to
// end: it loads configuration, discovers or restores runtime state,
// drives the step loop, and answers to signals and the checkpoint clock.
// Nothing inside internal/interp or internal/heap knows this package
// exists; the Stepper's Hooks field is the only thread back out to it.
package supervisor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"os/signal"

	"github.com/Net-Set/CodeCity/internal/ast"
	"github.com/Net-Set/CodeCity/internal/bindings"
	"github.com/Net-Set/CodeCity/internal/heap"
	"github.com/Net-Set/CodeCity/internal/interp"
	"github.com/Net-Set/CodeCity/internal/retention"
	"github.com/Net-Set/CodeCity/internal/snapshot"
)

// Supervisor wires a Heap/Stepper pair to its configuration, logging sink,
// and checkpoint/retention machinery.
type Supervisor struct {
	Config  Config
	Heap    *heap.Heap
	Stepper *interp.Stepper
	Logger  *Logger
	Parser  ast.Parser

	roots []*ast.Node
}

// New builds a freshly host-bindings-installed Heap/Stepper pair and wires
// its Hooks. parser may be nil — a CLI run against real startup-source
// files requires one, but tests exercising a Supervisor directly on
// ast/builder.go-constructed trees never call the parser-dependent hooks.
func New(cfg Config, parser ast.Parser, out io.Writer) *Supervisor {
	h := heap.New()
	s := interp.New(h)
	bindings.Install(h, s)
	logger := NewLogger(out)

	sup := &Supervisor{Config: cfg, Heap: h, Stepper: s, Logger: logger, Parser: parser}
	s.Hooks = &interp.Hooks{
		Parser:     parser,
		Logger:     logger,
		Checkpoint: func() error { return sup.Checkpoint() },
		Shutdown:   func(code int) { sup.Shutdown(code) },
	}
	return sup
}

// Bootstrap brings the Supervisor's Stepper into its initial runnable
// state. Startup sources are always (re-)parsed first when a parser is
// registered: a restored snapshot's interpreted-function and in-flight
// frame records reference AST node IDs by the same startup source the
// original run parsed, so those IDs must exist again before a snapshot
// can be decoded, not only when bootstrapping fresh. If a snapshot
// exists it then takes over entirely (replacing any program pushed from
// the parse pass); otherwise the freshly parsed sources become the
// initial program.
func (sup *Supervisor) Bootstrap() error {
	dir := sup.Config.DatabaseDirectory
	if _, err := os.Stat(dir); err != nil {
		return NewBootstrapError("locate database directory", err)
	}

	names, err := DiscoverStartupSources(dir)
	if err != nil {
		return err
	}
	if len(names) > 0 && sup.Parser != nil {
		for _, name := range names {
			path := filepath.Join(dir, name)
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return NewBootstrapError("read startup source "+name, readErr)
			}
			root, parseErr := sup.Parser.Parse(string(data))
			if parseErr != nil {
				return NewBootstrapError("parse startup source "+name, parseErr)
			}
			sup.roots = append(sup.roots, root)
			if len(sup.Stepper.Stacks) == 0 {
				sup.Stepper.CreateThreadForSrc(root)
			} else {
				sup.Stepper.AppendCode(root.Body)
			}
			sup.Logger.Printf("loaded startup source %s", name)
		}
	}

	latest, ok, err := LatestSnapshot(dir)
	if err != nil {
		return err
	}
	if ok {
		path := filepath.Join(dir, latest)
		if err := snapshot.LoadFile(path, sup.Heap, sup.Stepper, sup.roots...); err != nil {
			return NewSnapshotReadError(path, err)
		}
		sup.Logger.Printf("restored snapshot %s", latest)
		return nil
	}

	if len(names) == 0 {
		return NewBootstrapError("discover startup sources", fmt.Errorf("no .city snapshot and no startup sources in %s", dir))
	}
	if sup.Parser == nil {
		return NewBootstrapError("parse startup sources", fmt.Errorf("no parser registered with this supervisor"))
	}
	return nil
}

// Run drives the step loop to completion, servicing the checkpoint clock
// and TERM/INT/HUP between steps, and returns the process exit code.
func (sup *Supervisor) Run() int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	interval := time.Duration(sup.Config.CheckpointInterval) * time.Second
	var nextCheckpoint time.Time
	if interval > 0 {
		nextCheckpoint = time.Now().Add(interval)
	}

	for {
		select {
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				sup.Checkpoint()
			default:
				sup.checkpointThenReraise(sig)
				return 0 // unreachable: checkpointThenReraise terminates the process
			}
		default:
		}

		if !interval.IsZero() && !nextCheckpoint.IsZero() && time.Now().After(nextCheckpoint) {
			sup.Checkpoint()
			nextCheckpoint = time.Now().Add(interval)
		}

		if sup.Stepper.Fatal != nil {
			sup.Logger.Errorf("fatal: %v", sup.Stepper.Fatal)
			return 1
		}
		if !sup.Stepper.Step() {
			break
		}
	}

	if sup.Config.CheckpointAtShutdown {
		sup.Checkpoint()
	}
	return 0
}

// Checkpoint pauses the stepper, writes a snapshot, resumes, and runs
// retention. A write failure is logged and stepping continues — per the
// error design, a checkpoint failure is never fatal.
func (sup *Supervisor) Checkpoint() error {
	sup.Stepper.Pause()
	defer sup.Stepper.Resume()

	name := SnapshotFilename(time.Now())
	path := filepath.Join(sup.Config.DatabaseDirectory, name)
	if err := snapshot.WriteFile(path, sup.Heap, sup.Stepper); err != nil {
		werr := NewSnapshotWriteError(path, err)
		sup.Logger.Errorf("%v", werr)
		return werr
	}
	sup.Logger.Printf("checkpoint written: %s", name)
	sup.runRetention()
	return nil
}

// Shutdown is the numeric-exit-code path exposed to user code as
// system.shutdown(code): checkpoint if configured, then exit with code.
func (sup *Supervisor) Shutdown(code int) {
	if sup.Config.CheckpointAtShutdown {
		sup.Checkpoint()
	}
	os.Exit(code)
}

// checkpointThenReraise implements the TERM/INT contract: final snapshot,
// then re-deliver the same signal to this process after resetting its
// default disposition, so the process's observable exit is a conventional
// signal death rather than an arbitrary exit code.
func (sup *Supervisor) checkpointThenReraise(sig os.Signal) {
	if sup.Config.CheckpointAtShutdown {
		sup.Checkpoint()
	}
	signal.Reset(sig)
	if s, ok := sig.(syscall.Signal); ok {
		_ = syscall.Kill(os.Getpid(), s)
	} else {
		os.Exit(0)
	}
}

func (sup *Supervisor) runRetention() {
	dir := sup.Config.DatabaseDirectory
	names, err := ListSnapshots(dir)
	if err != nil {
		sup.Logger.Errorf("retention: %v", err)
		return
	}
	if len(names) < 2 {
		return
	}

	type entry struct {
		name string
		ts   int64
		size int64
	}
	entries := make([]entry, 0, len(names))
	var total int64
	for _, n := range names {
		info, statErr := os.Stat(filepath.Join(dir, n))
		var size int64
		if statErr == nil {
			size = info.Size()
		}
		total += size
		t, parseErr := parseSnapshotName(n)
		if parseErr != nil {
			continue
		}
		entries = append(entries, entry{name: n, ts: t.Unix(), size: size})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ts < entries[j].ts })

	maxBytes := sup.Config.CheckpointMaxDirectorySize * 1024 * 1024
	if retention.WithinBudget(total, maxBytes, len(entries), sup.Config.CheckpointMinFiles) {
		return
	}

	timestamps := make([]int64, len(entries))
	for i, e := range entries {
		timestamps[i] = e.ts
	}
	victimTS, ok := retention.ChooseDiscard(timestamps, sup.Config.CheckpointMinFiles, int64(sup.Config.CheckpointInterval))
	if !ok {
		return
	}
	for _, e := range entries {
		if e.ts == victimTS {
			if err := os.Remove(filepath.Join(dir, e.name)); err != nil {
				sup.Logger.Errorf("retention: remove %s: %v", e.name, err)
			} else {
				sup.Logger.Printf("retention: removed %s", e.name)
			}
			return
		}
	}
}

// parseSnapshotName inverts SnapshotFilename.
func parseSnapshotName(name string) (time.Time, error) {
	base := strings.TrimSuffix(name, snapshotExt)
	ti := strings.Index(base, "T")
	if ti < 0 {
		return time.Time{}, fmt.Errorf("snapshot filename %q missing date/time separator", name)
	}
	segs := strings.Split(base[ti+1:], ".")
	if len(segs) != 4 {
		return time.Time{}, fmt.Errorf("snapshot filename %q has unexpected time format", name)
	}
	reassembled := base[:ti] + "T" + segs[0] + ":" + segs[1] + ":" + segs[2] + "." + segs[3]
	return time.Parse("2006-01-02T15:04:05.000Z", reassembled)
}
