// Package tsp - cost utilities on caller-provided matrices.
//
// TourCost is the checked, public counterpart of distTable.cycleLength: it
// reads through the matrix.Matrix interface and validates every edge, so
// callers can re-measure any Tour returned by a solver independently.
//
// Design:
//   - Fast path for *matrix.Dense (no-copy row views) and generic path for any matrix.Matrix.
//   - Strict sentinels from types.go on any invalid input.
//   - Stable summation: rounded to 1e-9 to avoid cross-platform FP noise.
package tsp

import (
	"math"

	"github.com/katalvlaran/antga/matrix"
)

// roundScale controls final cost stabilization precision (1e-9).
const roundScale = 1e9

// TourCost returns the length of the closed cycle described by t on dist.
//
// Contract:
//   - t must be a permutation of {0..n-1} where n = dist.Rows().
//   - Returns ErrNonSquare, ErrDimensionMismatch, ErrIncompleteGraph, or ErrNegativeWeight.
//
// Complexity: O(n).
func TourCost(dist matrix.Matrix, t Tour) (float64, error) {
	if err := matrix.ValidateSquare(dist); err != nil {
		return 0, ErrNonSquare
	}
	if err := t.Validate(dist.Rows()); err != nil {
		return 0, err
	}
	if d, ok := dist.(*matrix.Dense); ok {
		return tourCostDense(d, t)
	}

	return tourCostGeneric(dist, t)
}

// tourCostDense sums the cycle using no-copy row views of *matrix.Dense.
func tourCostDense(d *matrix.Dense, t Tour) (float64, error) {
	var (
		n   = len(t)
		sum float64
		k   int
		w   float64
	)
	for k = 0; k < n; k++ {
		row, err := d.Row(t[k])
		if err != nil {
			return 0, ErrDimensionMismatch
		}
		w = row[t[(k+1)%n]]
		if err = checkEdge(w); err != nil {
			return 0, err
		}
		sum += w
	}

	return round1e9(sum), nil
}

// tourCostGeneric sums the cycle through the matrix.Matrix interface.
func tourCostGeneric(m matrix.Matrix, t Tour) (float64, error) {
	var (
		n   = len(t)
		sum float64
		k   int
		w   float64
		err error
	)
	for k = 0; k < n; k++ {
		w, err = m.At(t[k], t[(k+1)%n])
		if err != nil {
			return 0, ErrDimensionMismatch
		}
		if err = checkEdge(w); err != nil {
			return 0, err
		}
		sum += w
	}

	return round1e9(sum), nil
}

// checkEdge maps a single weight onto the sentinel policy.
func checkEdge(w float64) error {
	switch {
	case math.IsNaN(w):
		return ErrDimensionMismatch
	case math.IsInf(w, 0):
		return ErrIncompleteGraph
	case w < 0:
		return ErrNegativeWeight
	default:
		return nil
	}
}

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
