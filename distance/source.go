// SPDX-License-Identifier: MIT

package distance

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvmds/matrix"
)

var (
	// ErrTooFewElements is returned when a source has fewer than two elements.
	ErrTooFewElements = errors.New("distance: at least two elements required")

	// ErrNegative is returned for a negative distance.
	ErrNegative = errors.New("distance: negative distance")

	// ErrNaN is returned for a NaN distance.
	ErrNaN = errors.New("distance: NaN distance")

	// ErrAsymmetric is returned when Distance(i,j) != Distance(j,i) beyond tolerance.
	ErrAsymmetric = errors.New("distance: asymmetric distance")

	// ErrNonZeroSelf is returned when Distance(i,i) != 0.
	ErrNonZeroSelf = errors.New("distance: non-zero self distance")

	// ErrRagged is returned when point coordinates disagree in dimension.
	ErrRagged = errors.New("distance: points differ in dimension")
)

// Source describes a collection of elements from which a distance can be computed.
// Implementations must be symmetric and safe for concurrent reads: the
// iterative engine calls Distance from several workers at once.
type Source interface {
	Count() int                // number of elements
	Distance(i, j int) float64 // non-negative or +Inf
}

// matrixSource adapts a square matrix.
type matrixSource struct {
	m matrix.Matrix
}

// FromMatrix wraps a square matrix as a Source. The matrix is read, never written.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare.
func FromMatrix(m matrix.Matrix) (Source, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("FromMatrix: %w", err)
	}

	return matrixSource{m: m}, nil
}

func (s matrixSource) Count() int { return s.m.Rows() }

func (s matrixSource) Distance(i, j int) float64 {
	v, err := s.m.At(i, j)
	if err != nil {
		return math.NaN()
	}

	return v
}

// Points is a Source over a point cloud using Euclidean distance.
type Points [][]float64

// NewPoints validates that every point has the same dimension.
func NewPoints(pts [][]float64) (Points, error) {
	if len(pts) == 0 {
		return nil, ErrTooFewElements
	}
	d := len(pts[0])
	for i, p := range pts {
		if len(p) != d {
			return nil, fmt.Errorf("NewPoints: point %d has %d coords, want %d: %w", i, len(p), d, ErrRagged)
		}
	}

	return Points(pts), nil
}

func (p Points) Count() int { return len(p) }

func (p Points) Distance(i, j int) float64 {
	vi, vj := p[i], p[j]
	var s float64
	for k := range vi {
		d := vi[k] - vj[k]
		s += d * d
	}

	return math.Sqrt(s)
}

// funcSource adapts a closure.
type funcSource struct {
	n  int
	fn func(i, j int) float64
}

// Func wraps fn as a Source over n elements. fn must honour the Source contract.
func Func(n int, fn func(i, j int) float64) Source {
	return funcSource{n: n, fn: fn}
}

func (f funcSource) Count() int                { return f.n }
func (f funcSource) Distance(i, j int) float64 { return f.fn(i, j) }
