// SPDX-License-Identifier: MIT

package layout

import (
	"cmp"
	"math"
	"math/rand"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvmds/rng"
)

// candidate is a cache member ranked by embedded distance.
type candidate struct {
	idx  int
	dist float64
}

func compareCandidates(a, b candidate) int {
	if c := cmp.Compare(a.dist, b.dist); c != 0 {
		return c
	}

	return cmp.Compare(a.idx, b.idx)
}

// initCaches allocates the three caches and fills them with independent
// draws from the engine generator. No anchors exist yet, so sample draws
// from every element.
func (e *Engine) initCaches(workers int) {
	size := e.n * e.k
	e.nearIdx = make([]int, size)
	e.randIdx = make([]int, size)
	e.sampleIdx = make([]int, size)
	for i := 0; i < e.n; i++ {
		lo, hi := i*e.k, (i+1)*e.k
		for s := lo; s < hi; s++ {
			e.nearIdx[s] = rng.IntnExcept(e.rnd, e.n, i)
			e.randIdx[s] = rng.IntnExcept(e.rnd, e.n, i)
			e.sampleIdx[s] = e.drawSample(e.rnd, i)
		}
	}

	e.seen = make([]*bitset.BitSet, workers)
	e.cands = make([][]candidate, workers)
	for w := 0; w < workers; w++ {
		e.seen[w] = bitset.New(uint(e.n))
		e.cands[w] = make([]candidate, 0, 3*e.k)
	}
}

// drawSample picks a sample member for i: an anchor when any exists,
// otherwise any element, never i itself.
func (e *Engine) drawSample(r *rand.Rand, i int) int {
	if len(e.anchorList) > 0 {
		j := e.anchorList[r.Intn(len(e.anchorList))]
		if j != i {
			return j
		}
	}

	return rng.IntnExcept(r, e.n, i)
}

// refreshCaches redraws rand and sample for i and rebuilds near from the K
// closest distinct members of near ∪ rand ∪ sample. With fewer than K
// distinct candidates the ranked list repeats cyclically.
// Only the worker owning i calls it.
func (e *Engine) refreshCaches(w, i int) {
	r := e.workerR[w]
	lo, hi := i*e.k, (i+1)*e.k
	near, rnd, smp := e.nearIdx[lo:hi], e.randIdx[lo:hi], e.sampleIdx[lo:hi]
	for s := range rnd {
		rnd[s] = rng.IntnExcept(r, e.n, i)
		smp[s] = e.drawSample(r, i)
	}

	seen := e.seen[w]
	cands := e.cands[w][:0]
	for _, set := range [...][]int{near, rnd, smp} {
		for _, j := range set {
			if j == i || seen.Test(uint(j)) {
				continue
			}
			seen.Set(uint(j))
			cands = append(cands, candidate{idx: j, dist: e.lowDistance(i, j)})
		}
	}
	for _, c := range cands {
		seen.Clear(uint(c.idx))
	}
	slices.SortFunc(cands, compareCandidates)
	for s := range near {
		near[s] = cands[s%len(cands)].idx
	}
	e.cands[w] = cands
}

// lowDistance is the Euclidean distance in the frozen current buffer.
func (e *Engine) lowDistance(i, j int) float64 {
	pi, pj := e.posRows[i], e.posRows[j]
	var sum float64
	for a := range pi {
		d := pj[a] - pi[a]
		sum += d * d
	}

	return math.Sqrt(sum)
}
