// SPDX-License-Identifier: MIT

package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/lvmds/distance"
	"github.com/katalvlaran/lvmds/matrix"
	"github.com/katalvlaran/lvmds/parallel"
	"github.com/katalvlaran/lvmds/rng"
)

var (
	// ErrNilSource is returned by New for a nil source.
	ErrNilSource = errors.New("layout: nil distance source")

	// ErrTooFewElements is returned by New when the source has fewer than two elements.
	ErrTooFewElements = errors.New("layout: at least two elements required")

	// ErrDimension is returned for a target dimension < 1 or a coordinate of the wrong length.
	ErrDimension = errors.New("layout: invalid dimension")

	// ErrMode is returned by New for an unknown Mode.
	ErrMode = errors.New("layout: unknown mode")

	// ErrNeighbors is returned by New when the cache width is < 1.
	ErrNeighbors = errors.New("layout: neighbour count must be >= 1")

	// ErrWeight is returned by Step for a NaN, infinite or negative weight.
	ErrWeight = errors.New("layout: weight must be finite and >= 0")

	// ErrIndex is returned for an element index outside [0, Len()).
	ErrIndex = errors.New("layout: element index out of range")

	// ErrPosition is returned for a coordinate containing NaN or Inf.
	ErrPosition = errors.New("layout: coordinate must be finite")

	// ErrRepulsion is returned for a repulsion distance that is not finite and > 0.
	ErrRepulsion = errors.New("layout: repulsion distance must be finite and > 0")

	// ErrClosed is returned by Step after Close.
	ErrClosed = errors.New("layout: engine is closed")
)

// Engine is an iterative MDS layout over a fixed set of elements.
type Engine struct {
	src       distance.Source
	n, dim    int
	mode      Mode
	k         int
	repulsion float64

	rnd     *rand.Rand   // initial layout and healing; used between steps only
	workerR []*rand.Rand // one stream per worker
	pool    *parallel.Pool
	log     *slog.Logger
	metrics Collector

	// double-buffered state; the row views follow their buffer through Swap
	pos, next, vel       *matrix.Dense
	posRows, nextRows    [][]float64
	velRows              [][]float64
	boundsMin, boundsMax []float64

	fixed       *bitset.BitSet  // O(1) membership, read by workers
	anchors     *roaring.Bitmap // ordered anchor set
	anchorList  []int           // snapshot of anchors used for sampling
	anchorDirty bool

	// stochastic caches, N·K each, row i at [i*k, (i+1)*k)
	nearIdx, randIdx, sampleIdx []int

	// per-worker scratch
	errs  []float64
	disp  [][]float64
	seen  []*bitset.BitSet
	cands [][]candidate

	closed bool
}

// New builds an engine over src embedding into dim dimensions. Positions
// start uniformly random in [0,1) per axis.
//
// Errors: ErrNilSource, ErrTooFewElements, ErrDimension, ErrMode, ErrNeighbors.
//
// Complexity: O(N·(D+K)) time and space, plus the worker goroutines.
func New(src distance.Source, dim int, opts ...Option) (*Engine, error) {
	if src == nil {
		return nil, fmt.Errorf("New: %w", ErrNilSource)
	}
	n := src.Count()
	if n < 2 {
		return nil, fmt.Errorf("New: N=%d: %w", n, ErrTooFewElements)
	}
	if dim < 1 {
		return nil, fmt.Errorf("New: D=%d: %w", dim, ErrDimension)
	}
	o := gatherOptions(opts...)
	if !o.mode.Valid() {
		return nil, fmt.Errorf("New: %v: %w", o.mode, ErrMode)
	}
	if o.neighbors < 1 {
		return nil, fmt.Errorf("New: K=%d: %w", o.neighbors, ErrNeighbors)
	}
	workers := o.workers
	if workers == 0 {
		workers = parallel.WorkersFor(n)
	}

	e := &Engine{
		src:       src,
		n:         n,
		dim:       dim,
		mode:      o.mode,
		k:         o.neighbors,
		repulsion: o.repulsion,
		rnd:       o.rnd,
		log:       o.logger,
		metrics:   o.metrics,
		fixed:     bitset.New(uint(n)),
		anchors:   roaring.New(),
	}

	var err error
	if e.pos, e.posRows, err = newState(n, dim); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if e.next, e.nextRows, err = newState(n, dim); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	if e.mode.Velocity() {
		if e.vel, e.velRows, err = newState(n, dim); err != nil {
			return nil, fmt.Errorf("New: %w", err)
		}
	}
	for _, row := range e.posRows {
		for a := range row {
			row[a] = e.rnd.Float64()
		}
	}

	e.workerR = make([]*rand.Rand, workers)
	e.errs = make([]float64, workers)
	e.disp = make([][]float64, workers)
	for w := 0; w < workers; w++ {
		e.workerR[w] = rng.Derive(e.rnd, uint64(w))
		e.disp[w] = make([]float64, dim)
	}
	if e.mode.Stochastic() {
		e.initCaches(workers)
	}

	if e.pool, err = parallel.NewPool(workers, parallel.WithLogger(e.log)); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	e.refreshBounds()
	e.log.Debug("layout engine created",
		"elements", n, "dim", dim, "mode", e.mode.String(), "workers", workers, "neighbors", e.k)

	return e, nil
}

// newState allocates an n×dim buffer that accepts NaN (healed later) and
// returns its row views.
func newState(n, dim int) (*matrix.Dense, [][]float64, error) {
	m, err := matrix.NewDenseWithOptions(n, dim, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, nil, err
	}
	rows := make([][]float64, n)
	for i := range rows {
		if rows[i], err = m.Row(i); err != nil {
			return nil, nil, err
		}
	}

	return m, rows, nil
}

// Len returns the number of elements.
func (e *Engine) Len() int { return e.n }

// Dim returns the target dimension.
func (e *Engine) Dim() int { return e.dim }

// Mode returns the update strategy.
func (e *Engine) Mode() Mode { return e.mode }

// Workers returns the worker count.
func (e *Engine) Workers() int { return e.pool.Workers() }

// RepulsionDistance returns the current repulsion distance.
func (e *Engine) RepulsionDistance() float64 { return e.repulsion }

func (e *Engine) checkIndex(op string, i int) error {
	if i < 0 || i >= e.n {
		return fmt.Errorf("%s(%d): %w", op, i, ErrIndex)
	}

	return nil
}

func (e *Engine) checkPosition(op string, i int, p []float64) error {
	if len(p) != e.dim {
		return fmt.Errorf("%s(%d): len %d, want %d: %w", op, i, len(p), e.dim, ErrDimension)
	}
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s(%d): %w", op, i, ErrPosition)
		}
	}

	return nil
}

// FixElement pins element i at its current coordinate.
func (e *Engine) FixElement(i int) error {
	if err := e.checkIndex("FixElement", i); err != nil {
		return err
	}
	e.fixed.Set(uint(i))
	e.anchors.Add(uint32(i))
	e.anchorDirty = true

	return nil
}

// FixElementAt moves element i to p and pins it there.
func (e *Engine) FixElementAt(i int, p []float64) error {
	if err := e.SetElement(i, p); err != nil {
		return err
	}

	return e.FixElement(i)
}

// UnfixAll releases every anchor.
func (e *Engine) UnfixAll() {
	e.fixed.ClearAll()
	e.anchors.Clear()
	e.anchorDirty = true
}

// IsFixed reports whether element i is an anchor.
func (e *Engine) IsFixed(i int) bool {
	return i >= 0 && i < e.n && e.fixed.Test(uint(i))
}

// Anchors returns the anchored indices in ascending order.
func (e *Engine) Anchors() []int {
	return toInts(e.anchors.ToArray())
}

// SetElement moves element i to p without pinning it. The velocity of i is
// left untouched.
func (e *Engine) SetElement(i int, p []float64) error {
	if err := e.checkIndex("SetElement", i); err != nil {
		return err
	}
	if err := e.checkPosition("SetElement", i, p); err != nil {
		return err
	}
	if err := e.pos.SetRow(i, p); err != nil {
		return fmt.Errorf("SetElement(%d): %w", i, err)
	}
	e.refreshBounds()

	return nil
}

// SetRepulsionDistance sets the separation enforced for +Inf target distances.
func (e *Engine) SetRepulsionDistance(d float64) error {
	if !validRepulsion(d) {
		return fmt.Errorf("SetRepulsionDistance(%g): %w", d, ErrRepulsion)
	}
	e.repulsion = d

	return nil
}

// Position returns a copy of element i's coordinate.
func (e *Engine) Position(i int) ([]float64, error) {
	if err := e.checkIndex("Position", i); err != nil {
		return nil, err
	}

	return append([]float64(nil), e.posRows[i]...), nil
}

// Positions returns a copy of every coordinate, one row per element.
func (e *Engine) Positions() [][]float64 {
	out := make([][]float64, e.n)
	for i, row := range e.posRows {
		out[i] = append([]float64(nil), row...)
	}

	return out
}

// BoundsMin returns a copy of the per-axis minimum over all elements.
func (e *Engine) BoundsMin() []float64 { return append([]float64(nil), e.boundsMin...) }

// BoundsMax returns a copy of the per-axis maximum over all elements.
func (e *Engine) BoundsMax() []float64 { return append([]float64(nil), e.boundsMax...) }

// Normalized maps element i's coordinate into [0,1] per axis using the
// current bounds. A degenerate axis maps to 0.5.
func (e *Engine) Normalized(i int) ([]float64, error) {
	if err := e.checkIndex("Normalized", i); err != nil {
		return nil, err
	}
	out := make([]float64, e.dim)
	for a, v := range e.posRows[i] {
		span := e.boundsMax[a] - e.boundsMin[a]
		if !(span > 0) {
			out[a] = 0.5
			continue
		}
		out[a] = (v - e.boundsMin[a]) / span
	}

	return out, nil
}

// Close stops the worker pool. Safe to call more than once.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	return e.pool.Close()
}

func (e *Engine) refreshBounds() {
	// pos is a non-nil *Dense, so ColumnBounds cannot fail
	e.boundsMin, e.boundsMax, _ = matrix.ColumnBounds(e.pos)
}

func (e *Engine) refreshAnchors() {
	if !e.anchorDirty {
		return
	}
	e.anchorList = toInts(e.anchors.ToArray())
	e.anchorDirty = false
}

func toInts(a []uint32) []int {
	out := make([]int, len(a))
	for i, v := range a {
		out[i] = int(v)
	}

	return out
}
