// SPDX-License-Identifier: MIT

package parallel

// Range is the half-open index interval [Lo, Hi).
type Range struct {
	Lo, Hi int
}

// Len returns Hi-Lo.
func (r Range) Len() int { return r.Hi - r.Lo }

// Partition splits [0,n) into parts contiguous ranges in index order. The
// first n%parts ranges hold one extra element; when n < parts the trailing
// ranges are empty. parts < 1 is treated as 1, n < 0 as 0.
//
// Complexity: O(parts).
func Partition(n, parts int) []Range {
	if parts < 1 {
		parts = 1
	}
	if n < 0 {
		n = 0
	}
	out := make([]Range, parts)
	base, extra := n/parts, n%parts
	lo := 0
	for w := 0; w < parts; w++ {
		size := base
		if w < extra {
			size++
		}
		out[w] = Range{Lo: lo, Hi: lo + size}
		lo += size
	}

	return out
}

// Worker-count heuristic thresholds.
const (
	largeThreshold  = 1000
	mediumThreshold = 100
	largeWorkers    = 32
	mediumWorkers   = 4
)

// WorkersFor returns the worker count used for n elements:
// n > 1000 → 32, n > 100 → 4, otherwise 1.
func WorkersFor(n int) int {
	switch {
	case n > largeThreshold:
		return largeWorkers
	case n > mediumThreshold:
		return mediumWorkers
	default:
		return 1
	}
}
