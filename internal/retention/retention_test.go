package retention

import "testing"

func TestChooseDiscardTooFewSnapshots(t *testing.T) {
	if _, ok := ChooseDiscard([]int64{100}, 0, 600); ok {
		t.Error("a single snapshot should never be discarded")
	}
	if _, ok := ChooseDiscard([]int64{100, 200}, 2, 600); ok {
		t.Error("snapshot count at the minFiles floor should never be discarded")
	}
}

func TestChooseDiscardPrefersDenseRecentCluster(t *testing.T) {
	// Evenly spaced snapshots: removing one from the middle of a dense run
	// near "now" costs less than removing the oldest, which the decay
	// curve expects to be sparse anyway.
	snapshots := []int64{0, 600, 1200, 1800, 2400, 3000}
	victim, ok := ChooseDiscard(snapshots, 0, 600)
	if !ok {
		t.Fatal("expected a discard candidate")
	}
	if victim == snapshots[len(snapshots)-1] {
		t.Error("the newest snapshot should never be chosen for discard")
	}
	if victim == snapshots[0] {
		t.Error("removing the oldest snapshot should cost more than thinning the recent run")
	}
}

func TestChooseDiscardZeroIntervalDoesNotPanic(t *testing.T) {
	if _, ok := ChooseDiscard([]int64{0, 10, 20}, 0, 0); !ok {
		t.Error("expected a discard candidate even with a zero interval (clamped internally)")
	}
}

func TestWithinBudgetNoCeiling(t *testing.T) {
	if !WithinBudget(1<<40, 0, 100, 0) {
		t.Error("a non-positive max should mean no ceiling at all")
	}
}

func TestWithinBudgetUnderCeiling(t *testing.T) {
	if !WithinBudget(100, 200, 5, 0) {
		t.Error("total under the ceiling should be within budget")
	}
	if WithinBudget(300, 200, 5, 0) {
		t.Error("total over the ceiling should not be within budget")
	}
}

func TestWithinBudgetFloorOverridesCeiling(t *testing.T) {
	if !WithinBudget(1<<40, 10, 3, 3) {
		t.Error("fileCount at the minFiles floor must be within budget regardless of size")
	}
}

func TestIdealOffsetGrowsWithRank(t *testing.T) {
	if idealOffset(0, Decay) != 0 {
		t.Errorf("the newest snapshot's ideal offset should be 0, got %v", idealOffset(0, Decay))
	}
	if idealOffset(3, Decay) <= idealOffset(1, Decay) {
		t.Error("ideal offset should grow with rank from newest")
	}
}
