// Package retention implements the snapshot directory's pruning policy: an
// exponentially-decaying ideal spacing of kept checkpoints, so a long-running
// instance keeps dense recent history and sparse old history rather than
// either unbounded growth or a flat rolling window.
package retention

import "math"

// Decay is the per-step decay used by the ideal-spacing formula. A higher
// value spaces older snapshots out faster; matches no particular external
// source, chosen as a middle-of-the-road exponential base (doubling-ish
// spacing every few slots).
const Decay = 1.5

// idealOffset returns how many checkpoint intervals ago the n-th-from-newest
// (0-indexed) of N kept snapshots should ideally sit, per the decay formula
// n + r^n - 1.
func idealOffset(n int, r float64) float64 {
	return float64(n) + math.Pow(r, float64(n)) - 1
}

// ChooseDiscard picks the single timestamp among snapshots (sorted oldest
// to newest, as Unix seconds) whose removal best preserves the
// exponentially-decaying ideal spacing, or reports ok=false if no discard
// should happen: fewer than minFiles+1 snapshots remain, or fewer than two
// (the newest is never a candidate). intervalSeconds converts raw timestamp gaps into
// checkpoint-interval units, the unit the decay formula is defined over; a
// zero or negative value (checkpointInterval disabled) falls back to 1 so
// the algorithm still produces a deterministic, rank-based ordering.
func ChooseDiscard(snapshots []int64, minFiles int, intervalSeconds int64) (victim int64, ok bool) {
	if len(snapshots) <= minFiles || len(snapshots) < 2 {
		return 0, false
	}
	if intervalSeconds <= 0 {
		intervalSeconds = 1
	}

	best := -1
	bestCost := math.Inf(1)
	for i := 0; i < len(snapshots)-1; i++ {
		candidate := make([]int64, 0, len(snapshots)-1)
		candidate = append(candidate, snapshots[:i]...)
		candidate = append(candidate, snapshots[i+1:]...)
		cost := spacingCost(candidate, intervalSeconds)
		if cost < bestCost {
			bestCost = cost
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return snapshots[best], true
}

// spacingCost sums, over each of timestamps (oldest-to-newest), the absolute
// deviation between its actual age (relative to the newest entry, rescaled
// into checkpoint-interval units) and its ideal exponential-decay offset.
func spacingCost(timestamps []int64, intervalSeconds int64) float64 {
	n := len(timestamps)
	if n == 0 {
		return 0
	}
	newest := timestamps[n-1]
	var cost float64
	for i, ts := range timestamps {
		fromNewest := n - 1 - i // 0 for the newest, increasing going backward
		actualAge := float64(newest-ts) / float64(intervalSeconds)
		idealAge := idealOffset(fromNewest, Decay)
		cost += math.Abs(actualAge - idealAge)
	}
	return cost
}

// WithinBudget reports whether a directory holding totalBytes across
// fileCount snapshots satisfies the configured ceiling: either under the
// byte budget, or already down to the minimum file floor.
func WithinBudget(totalBytes int64, maxBytes int64, fileCount, minFiles int) bool {
	if maxBytes <= 0 {
		return true
	}
	return totalBytes <= maxBytes || fileCount <= minFiles
}
