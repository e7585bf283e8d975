// Package tsp_test provides lightweight testing helpers shared across *_test.go
// files in this package.
package tsp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/antga/matrix"
	"github.com/katalvlaran/antga/tsp"
)

// -----------------------------------------------------------------------------
// Constants - single source of truth for test knobs
// -----------------------------------------------------------------------------

const (
	// epsTiny is the strict tolerance for length comparisons.
	epsTiny = 1e-9

	// seedDet is a deterministic seed (0 => internal default seed).
	seedDet = int64(0)

	// seedAlt is a second seed for "different seed" checks.
	seedAlt = int64(20240611)
)

// -----------------------------------------------------------------------------
// testDense: a minimal matrix.Matrix that is NOT *matrix.Dense, used to hit
// the generic (interface) code paths.
// -----------------------------------------------------------------------------

type testDense struct{ a [][]float64 }

var _ matrix.Matrix = testDense{}

func (m testDense) Rows() int { return len(m.a) }
func (m testDense) Cols() int {
	if len(m.a) == 0 {
		return 0
	}

	return len(m.a[0])
}
func (m testDense) At(i, j int) (float64, error) {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return 0, matrix.ErrOutOfRange
	}

	return m.a[i][j], nil
}
func (m testDense) Set(i, j int, v float64) error {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return matrix.ErrOutOfRange
	}
	m.a[i][j] = v

	return nil
}
func (m testDense) Clone() matrix.Matrix {
	cp := make([][]float64, len(m.a))
	for i := range m.a {
		cp[i] = append([]float64(nil), m.a[i]...)
	}

	return testDense{a: cp}
}

// -----------------------------------------------------------------------------
// Generic helpers
// -----------------------------------------------------------------------------

// Repeat runs fn N times. Useful for determinism/stability checks.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	for i := 0; i < n; i++ {
		fn(t)
	}
}

// floatsClose checks relative/absolute closeness of two float64 values.
func floatsClose(a, b, rel, abs float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	if diff <= abs {
		return true
	}

	return diff <= rel*math.Max(math.Abs(a), math.Abs(b))
}

// mustDense builds a *matrix.Dense from rows or fails the test.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// -----------------------------------------------------------------------------
// Geometric generators
// -----------------------------------------------------------------------------

// euclidRows builds symmetric Euclidean rows with a zero diagonal.
func euclidRows(pts [][2]float64) [][]float64 {
	n := len(pts)
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])
			a[i][j] = d
			a[j][i] = d
		}
	}

	return a
}

// euclid builds a *matrix.Dense Euclidean metric from 2D points.
func euclid(t *testing.T, pts [][2]float64) *matrix.Dense {
	t.Helper()

	return mustDense(t, euclidRows(pts))
}

// unitSquare is the 4-city instance with optimal tour length 4.
func unitSquare(t *testing.T) *matrix.Dense {
	t.Helper()

	return euclid(t, [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
}

// circle places n points on a slightly rippled unit circle; the optimal tour
// visits them in angular order.
func circle(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	pts := make([][2]float64, n)
	for i := 0; i < n; i++ {
		th := 2 * math.Pi * float64(i) / float64(n)
		r := 1.0 + 0.025*float64(i%3)
		pts[i] = [2]float64{r * math.Cos(th), r * math.Sin(th)}
	}

	return euclid(t, pts)
}

// smallOpts returns fast options for unit tests.
func smallOpts(algo tsp.Algorithm) tsp.Options {
	opts := tsp.DefaultOptions()
	opts.Algo = algo
	opts.Ants = 8
	opts.Iterations = 5
	opts.ASRounds = 3
	opts.GAGenerations = 3
	opts.Seed = seedDet

	return opts
}

// requirePermutation asserts that tour visits each of n cities exactly once.
func requirePermutation(t *testing.T, tour tsp.Tour, n int) {
	t.Helper()
	require.NoError(t, tour.Validate(n), "tour %v is not a permutation of %d cities", tour, n)
}
