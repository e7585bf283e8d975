// Package tsp - validation utilities shared by every solver.
//
// This file contains small, tight helpers that:
//  1. Validate Options (counts, exponents, probabilities).
//  2. Validate the distance matrix (shape, diagonal, negativity, NaN/∞, zero policy)
//     while prefetching it into the immutable distTable used by hot loops.
//
// Design principles:
//   - Fail fast: everything is checked before the first ant moves.
//   - No logging, no panics on user input - only sentinel errors from types.go,
//     always wrapped in ErrInvalidConfiguration.
//   - O(n²) worst-case where n is the matrix size.
package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/antga/matrix"
)

// symTol is a structural tolerance for diagonal checks.
const symTol = 1e-12

// invalid wraps a specific sentinel into the configuration taxonomy.
func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
}

// invalidf wraps a formatted reason into the configuration taxonomy.
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// validateAll verifies Options + distance matrix and returns the prefetched table.
//
// Complexity: O(n²) time, O(n²) space for the table.
func validateAll(dist matrix.Matrix, opts Options) (*distTable, error) {
	// Stage 1: Options-only sanity.
	if err := validateOptionsStandalone(opts); err != nil {
		return nil, err
	}

	// Stage 2: Matrix shape/values + prefetch.
	return validateDistMatrix(dist, opts.RejectZeroDistance)
}

// validateOptionsStandalone checks internal consistency of Options without
// referencing matrices or tours.
//
// Complexity: O(1).
func validateOptionsStandalone(opts Options) error {
	switch opts.Algo {
	case AntSystem, GAHybrid:
		// ok
	default:
		return invalid(ErrUnsupportedAlgorithm)
	}
	if opts.Ants <= 0 {
		return invalidf("ants must be > 0 (got %d)", opts.Ants)
	}
	// Exponents must be positive and finite; the negated form also rejects NaN.
	if !(opts.Alpha > 0) || math.IsInf(opts.Alpha, 0) {
		return invalidf("alpha must be a positive finite number (got %g)", opts.Alpha)
	}
	if !(opts.Beta > 0) || math.IsInf(opts.Beta, 0) {
		return invalidf("beta must be a positive finite number (got %g)", opts.Beta)
	}
	if !inUnitInterval(opts.Evaporation) {
		return invalidf("evaporation must be in [0,1] (got %g)", opts.Evaporation)
	}
	if opts.Iterations < 0 {
		return invalidf("iterations must be >= 0 (got %d)", opts.Iterations)
	}
	if opts.Workers < 0 {
		return invalidf("workers must be >= 0 (got %d)", opts.Workers)
	}
	if opts.Algo != GAHybrid {
		return nil
	}

	// Hybrid-only knobs.
	if opts.ASRounds <= 0 {
		return invalidf("ant system rounds must be > 0 (got %d)", opts.ASRounds)
	}
	if opts.GAGenerations <= 0 {
		return invalidf("genetic generations must be > 0 (got %d)", opts.GAGenerations)
	}
	if !inUnitInterval(opts.CrossoverProb) {
		return invalidf("crossover probability must be in [0,1] (got %g)", opts.CrossoverProb)
	}
	if !inUnitInterval(opts.MutationProb) {
		return invalidf("mutation probability must be in [0,1] (got %g)", opts.MutationProb)
	}

	return nil
}

// inUnitInterval reports x ∈ [0,1]; NaN fails.
func inUnitInterval(x float64) bool {
	return x >= 0 && x <= 1
}

// validateDistMatrix performs full matrix validation and prefetch:
//   - non-nil, square, n>=2,
//   - diagonal ≈ 0 (|a_ii| ≤ symTol), finite,
//   - no negative, NaN or ±Inf off-diagonal distances,
//   - zero off-diagonal distances only when rejectZero==false.
//
// Symmetry is not enforced: the pheromone field is updated symmetrically,
// but the construction rule reads d(i,j) in the direction travelled.
//
// Complexity: O(n²).
func validateDistMatrix(dist matrix.Matrix, rejectZero bool) (*distTable, error) {
	// Stage 1: shape checks (non-nil, square).
	if err := matrix.ValidateSquare(dist); err != nil {
		return nil, invalid(fmt.Errorf("%w (%w)", ErrNonSquare, err))
	}
	var n = dist.Rows()
	if n < 2 {
		// A single city has no tour edges to learn.
		return nil, invalid(ErrDimensionMismatch)
	}

	// Stage 2: value scan with prefetch into w[i*n+j].
	var (
		t    = &distTable{n: n, w: make([]float64, n*n), minPositive: math.Inf(1)}
		i, j int
		x    float64
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			x, err = dist.At(i, j)
			if err != nil {
				return nil, invalid(fmt.Errorf("%w: %w", ErrDimensionMismatch, err))
			}
			if math.IsNaN(x) {
				return nil, invalid(ErrDimensionMismatch)
			}
			if i == j {
				if math.IsInf(x, 0) || math.Abs(x) > symTol {
					return nil, invalid(ErrNonZeroDiagonal)
				}
				t.w[i*n+j] = 0
				continue
			}
			if x < 0 {
				return nil, invalid(ErrNegativeWeight)
			}
			if math.IsInf(x, 0) {
				return nil, invalid(ErrIncompleteGraph)
			}
			if x == 0 && rejectZero {
				return nil, invalid(fmt.Errorf("%w: d(%d,%d) == 0", ErrDegenerateDistance, i, j))
			}
			if x > 0 && x < t.minPositive {
				t.minPositive = x
			}
			t.w[i*n+j] = x
		}
	}

	return t, nil
}
