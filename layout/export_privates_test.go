// SPDX-License-Identifier: MIT

package layout

// Test bridge: read-only views of the stochastic caches for layout_test.

// CachesOf returns copies of element i's near, rand and sample caches.
func CachesOf(e *Engine, i int) (near, rnd, sample []int) {
	if !e.mode.Stochastic() {
		return nil, nil, nil
	}
	lo, hi := i*e.k, (i+1)*e.k

	return append([]int(nil), e.nearIdx[lo:hi]...),
		append([]int(nil), e.randIdx[lo:hi]...),
		append([]int(nil), e.sampleIdx[lo:hi]...)
}
