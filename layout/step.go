// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"math"
	"time"
)

// Step performs one parallel optimisation step with the given weight and
// returns the stress sqrt(Σ(low−high)²) over every pair that exerted a force.
//
// NaN coordinates left by a previous step are re-drawn uniformly in [0,1)
// first, and the element's velocity is reset. Anchors are copied unchanged.
//
// Errors: ErrClosed, ErrWeight, parallel.ErrWorkerPanic (the state is left
// as it was before the step, except for velocities and caches).
//
// Complexity: O(N²·D) for the exhaustive modes, O(N·K·(D + log K)) for the
// stochastic ones, split over Workers().
func (e *Engine) Step(weight float64) (float64, error) {
	if e.closed {
		return 0, ErrClosed
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return 0, fmt.Errorf("Step(%g): %w", weight, ErrWeight)
	}
	start := time.Now()

	e.heal()
	e.refreshAnchors()
	clear(e.errs)

	err := e.pool.For(e.n, func(w, lo, hi int) {
		e.stepRange(w, lo, hi, weight)
	})
	if err != nil {
		return 0, fmt.Errorf("Step: %w", err)
	}

	if err = e.pos.Swap(e.next); err != nil {
		return 0, fmt.Errorf("Step: %w", err)
	}
	e.posRows, e.nextRows = e.nextRows, e.posRows
	e.refreshBounds()

	var sum float64
	for _, v := range e.errs {
		sum += v
	}
	stress := math.Sqrt(sum)
	e.metrics.RecordStep(e.mode, time.Since(start), stress)

	return stress, nil
}

// heal re-draws NaN coordinates from the engine generator.
func (e *Engine) heal() {
	healed := 0
	for i, row := range e.posRows {
		hit := false
		for a, v := range row {
			if math.IsNaN(v) {
				row[a] = e.rnd.Float64()
				hit = true
			}
		}
		if !hit {
			continue
		}
		healed++
		if e.velRows != nil {
			clear(e.velRows[i])
		}
	}
	if healed > 0 {
		e.log.Debug("re-drew NaN coordinates", "elements", healed)
		e.metrics.RecordHeal(healed)
	}
}

// stepRange updates elements [lo,hi) on worker w. It writes only rows in
// that range of next, velocity and the caches.
func (e *Engine) stepRange(w, lo, hi int, weight float64) {
	disp := e.disp[w]
	var errSum float64
	for i := lo; i < hi; i++ {
		if e.fixed.Test(uint(i)) {
			copy(e.nextRows[i], e.posRows[i])
			continue
		}
		clear(disp)
		if e.mode.Stochastic() {
			errSum += e.accumulateSampled(i, weight, disp)
			e.refreshCaches(w, i)
		} else {
			errSum += e.accumulateAll(i, weight, disp)
		}
		e.advance(w, i, disp)
	}
	e.errs[w] = errSum
}

// accumulateAll adds the pull of every other element.
func (e *Engine) accumulateAll(i int, weight float64, disp []float64) float64 {
	scale := weight / float64(e.n-1)
	var errSum float64
	for j := 0; j < e.n; j++ {
		if j != i {
			errSum += e.force(i, j, scale, disp)
		}
	}

	return errSum
}

// accumulateSampled adds the pull of the 3·K cached elements.
func (e *Engine) accumulateSampled(i int, weight float64, disp []float64) float64 {
	scale := weight / float64(3*e.k)
	lo, hi := i*e.k, (i+1)*e.k
	var errSum float64
	for _, set := range [...][]int{e.nearIdx[lo:hi], e.randIdx[lo:hi], e.sampleIdx[lo:hi]} {
		for _, j := range set {
			errSum += e.force(i, j, scale, disp)
		}
	}

	return errSum
}

// force adds scale·(low−high)·(p_j−p_i)/low to disp and returns (low−high)².
// A +Inf target only repels, and only while low < repulsion distance.
func (e *Engine) force(i, j int, scale float64, disp []float64) float64 {
	low := math.Max(e.lowDistance(i, j), MinLowDistance)
	high := e.src.Distance(i, j)
	if math.IsInf(high, 1) {
		if low >= e.repulsion {
			return 0
		}
		high = e.repulsion
	}
	gap := low - high
	f := scale * gap / low
	pi, pj := e.posRows[i], e.posRows[j]
	for a := range disp {
		disp[a] += f * (pj[a] - pi[a])
	}

	return gap * gap
}

// advance writes element i's next coordinate for the engine mode.
func (e *Engine) advance(w, i int, disp []float64) {
	pi, ni := e.posRows[i], e.nextRows[i]
	if !e.mode.Velocity() {
		for a := range ni {
			ni[a] = pi[a] + disp[a]
		}

		return
	}

	anneal := 1.0
	if e.mode == StochasticVelocityAnnealing {
		anneal += AnnealingSpread * e.workerR[w].Float64()
	}
	vi := e.velRows[i]
	for a := range ni {
		v := VelocityGain*disp[a] + VelocityDamping*vi[a]
		ni[a] = pi[a] + anneal*disp[a] + vi[a]
		vi[a] = v
	}
}
