package tsp_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/antga/matrix"
	"github.com/katalvlaran/antga/tsp"
)

// TestSolve_InvalidOptions checks that every option violation fails fast with
// ErrInvalidConfiguration.
func TestSolve_InvalidOptions(t *testing.T) {
	m := unitSquare(t)
	cases := []struct {
		name   string
		mutate func(o *tsp.Options)
	}{
		{"zero ants", func(o *tsp.Options) { o.Ants = 0 }},
		{"negative alpha", func(o *tsp.Options) { o.Alpha = -1 }},
		{"zero beta", func(o *tsp.Options) { o.Beta = 0 }},
		{"nan alpha", func(o *tsp.Options) { o.Alpha = math.NaN() }},
		{"inf beta", func(o *tsp.Options) { o.Beta = math.Inf(1) }},
		{"evaporation above one", func(o *tsp.Options) { o.Evaporation = 1.5 }},
		{"evaporation nan", func(o *tsp.Options) { o.Evaporation = math.NaN() }},
		{"negative iterations", func(o *tsp.Options) { o.Iterations = -1 }},
		{"negative workers", func(o *tsp.Options) { o.Workers = -2 }},
		{"zero as rounds", func(o *tsp.Options) { o.ASRounds = 0 }},
		{"zero generations", func(o *tsp.Options) { o.GAGenerations = 0 }},
		{"crossover below zero", func(o *tsp.Options) { o.CrossoverProb = -0.1 }},
		{"mutation above one", func(o *tsp.Options) { o.MutationProb = 1.1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := smallOpts(tsp.GAHybrid)
			tc.mutate(&opts)
			_, err := tsp.SolveWithMatrix(m, opts)
			require.ErrorIs(t, err, tsp.ErrInvalidConfiguration)
		})
	}
}

// TestSolve_UnsupportedAlgorithm checks the dispatcher's default branch.
func TestSolve_UnsupportedAlgorithm(t *testing.T) {
	opts := smallOpts(tsp.Algorithm(42))
	_, err := tsp.SolveWithMatrix(unitSquare(t), opts)
	require.ErrorIs(t, err, tsp.ErrInvalidConfiguration)
	require.ErrorIs(t, err, tsp.ErrUnsupportedAlgorithm)
}

// TestAntSystem_IgnoresHybridKnobs checks plain Ant System does not validate
// the GA-only fields.
func TestAntSystem_IgnoresHybridKnobs(t *testing.T) {
	opts := smallOpts(tsp.AntSystem)
	opts.ASRounds = 0
	opts.CrossoverProb = 7
	_, err := tsp.SolveWithMatrix(unitSquare(t), opts)
	require.NoError(t, err)
}

// TestSolve_InvalidMatrix maps matrix defects onto both the configuration
// sentinel and the specific one.
func TestSolve_InvalidMatrix(t *testing.T) {
	base := func() [][]float64 {
		return euclidRows([][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	}
	cases := []struct {
		name string
		m    matrix.Matrix
		want error
	}{
		{"non square", testDense{a: [][]float64{{0, 1, 2}, {1, 0, 3}}}, tsp.ErrNonSquare},
		{"nil", nil, tsp.ErrNonSquare},
		{"single city", testDense{a: [][]float64{{0}}}, tsp.ErrDimensionMismatch},
		{"negative", func() matrix.Matrix { a := base(); a[0][2] = -1; return testDense{a: a} }(), tsp.ErrNegativeWeight},
		{"diagonal", func() matrix.Matrix { a := base(); a[1][1] = 0.5; return testDense{a: a} }(), tsp.ErrNonZeroDiagonal},
		{"infinite", func() matrix.Matrix { a := base(); a[2][3] = math.Inf(1); return testDense{a: a} }(), tsp.ErrIncompleteGraph},
		{"nan", func() matrix.Matrix { a := base(); a[3][0] = math.NaN(); return testDense{a: a} }(), tsp.ErrDimensionMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, algo := range []tsp.Algorithm{tsp.AntSystem, tsp.GAHybrid} {
				_, err := tsp.SolveWithMatrix(tc.m, smallOpts(algo))
				require.ErrorIs(t, err, tsp.ErrInvalidConfiguration)
				require.ErrorIs(t, err, tc.want)
			}
		})
	}
}

// TestSolve_DegenerateDistance covers the all-zero matrix (C_nn == 0) and
// the RejectZeroDistance policy.
func TestSolve_DegenerateDistance(t *testing.T) {
	zeros := mustDense(t, [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}})
	_, err := tsp.SolveWithMatrix(zeros, smallOpts(tsp.AntSystem))
	require.ErrorIs(t, err, tsp.ErrDegenerateDistance)

	// Two coincident cities are fine by default ...
	dup := euclid(t, [][2]float64{{0, 0}, {0, 0}, {1, 0}, {1, 1}})
	res, err := tsp.SolveWithMatrix(dup, smallOpts(tsp.AntSystem))
	require.NoError(t, err)
	require.False(t, math.IsInf(res.BestLength, 0))

	// ... and rejected on request.
	opts := smallOpts(tsp.AntSystem)
	opts.RejectZeroDistance = true
	_, err = tsp.SolveWithMatrix(dup, opts)
	require.True(t, errors.Is(err, tsp.ErrDegenerateDistance))
	require.ErrorIs(t, err, tsp.ErrInvalidConfiguration)

	// Subnormal distances give C_nn > 0 but m/C_nn = +Inf.
	d := math.SmallestNonzeroFloat64
	tiny := mustDense(t, [][]float64{{0, d, d}, {d, 0, d}, {d, d, 0}})
	for _, algo := range []tsp.Algorithm{tsp.AntSystem, tsp.GAHybrid} {
		_, err = tsp.SolveWithMatrix(tiny, smallOpts(algo))
		require.ErrorIs(t, err, tsp.ErrDegenerateDistance)
		require.ErrorContains(t, err, "overflows")
	}
}

// TestSolve_AsymmetricAccepted checks symmetry is not required.
func TestSolve_AsymmetricAccepted(t *testing.T) {
	rows := euclidRows([][2]float64{{0, 0}, {2, 0}, {2, 1}, {0, 1}, {1, 3}})
	for i := range rows {
		for j := range rows[i] {
			if i > j {
				rows[i][j] += 0.5
			}
		}
	}
	res, err := tsp.SolveWithMatrix(mustDense(t, rows), smallOpts(tsp.GAHybrid))
	require.NoError(t, err)

	cost, err := tsp.TourCost(mustDense(t, rows), res.BestTour)
	require.NoError(t, err)
	require.InDelta(t, res.BestLength, cost, epsTiny)
}
