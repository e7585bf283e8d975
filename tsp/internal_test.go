package tsp

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/antga/matrix"
)

// fixedSource returns the same Int63 forever.
type fixedSource int64

func (s fixedSource) Int63() int64 { return int64(s) }
func (fixedSource) Seed(int64) {}

// uniformTable returns an n-city table with every off-diagonal distance 1.
func uniformTable(t *testing.T, n int) *distTable {
	t.Helper()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			if i != j {
				rows[i][j] = 1
			}
		}
	}
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)
	tab, err := validateDistMatrix(m, false)
	require.NoError(t, err)

	return tab
}

// depositField sums the symmetric 1/L deposits of tours onto an empty n×n field.
func depositField(tab *distTable, tours []Tour, lengths []float64) [][]float64 {
	n := tab.n
	want := make([][]float64, n)
	for i := range want {
		want[i] = make([]float64, n)
	}
	for k, tour := range tours {
		amount := tab.depositFor(lengths[k])
		for p := range tour {
			a, b := tour[p], tour[(p+1)%n]
			want[a][b] += amount
			want[b][a] = want[a][b]
		}
	}

	return want
}

func requireField(t *testing.T, col *Colony, want [][]float64) {
	t.Helper()
	for i := range want {
		for j := range want[i] {
			require.InDelta(t, want[i][j], col.field.Level(i, j), 1e-12, "level(%d,%d)", i, j)
		}
	}
}

// TestAntPick_OvershootTakesLastPositive draws r just below 1 while the
// normalised mass of seven equal candidates sums to less than r. City 8 is
// unvisited but carries no pheromone, so the last positive candidate is 7.
func TestAntPick_OvershootTakesLastPositive(t *testing.T) {
	const n = 9
	tab := uniformTable(t, n)
	field, err := NewPheromoneField(n, 1)
	require.NoError(t, err)
	field.rows[0][8], field.rows[8][0] = 0, 0

	a := newAnt(tab, field, 1, 1, rand.New(rand.NewSource(1)))
	for i := range a.succ {
		a.succ[i] = unvisited
		a.visited[i] = false
	}
	a.start, a.cur = 0, 0
	a.visited[0] = true

	a.rng = rand.New(fixedSource(math.MaxInt64 - 1023))
	r := a.rng.Float64()
	require.Less(t, r, 1.0)

	var mass float64
	for j := 1; j <= 7; j++ {
		mass += 1.0 / 7
	}
	require.Less(t, mass, r)

	require.Equal(t, 7, a.pick())
}

// TestHybridIteration_FeedsGAToursBack checks step (c) of the hybrid loop:
// with ρ=1 and one AS round, the field after a non-final outer iteration is
// exactly the GA deposits, and after the final one exactly the ant deposits.
func TestHybridIteration_FeedsGAToursBack(t *testing.T) {
	pts := [][2]float64{{0, 0}, {3, 1}, {5, 4}, {2, 6}, {-1, 5}, {-3, 2}, {1, 3}}
	rows := make([][]float64, len(pts))
	for i := range pts {
		rows[i] = make([]float64, len(pts))
		for j := range pts {
			rows[i][j] = math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])
		}
	}
	dist, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Ants = 6
	opts.Evaporation = 1
	opts.ASRounds = 1
	opts.GAGenerations = 3
	opts.Iterations = 2
	opts.Seed = 7

	tab, err := validateAll(dist, opts)
	require.NoError(t, err)
	rng := rngFromSeed(opts.Seed)
	col, err := newColony(tab, opts, rng)
	require.NoError(t, err)
	rec := newRecorder(opts, col)

	pop, err := hybridIteration(col, tab, opts, rng, rec, 1)
	require.NoError(t, err)
	requireField(t, col, depositField(tab, pop.Tours(), pop.TourLengths()))
	for _, a := range col.Ants() {
		require.False(t, a.Done(), "ants are reset for the next outer iteration")
	}

	_, err = hybridIteration(col, tab, opts, rng, rec, 2)
	require.NoError(t, err)
	for _, a := range col.Ants() {
		require.True(t, a.Done(), "no reset after the last outer iteration")
	}
	requireField(t, col, depositField(tab, col.Tours(), col.TourLengths()))

	res := rec.finish(col)
	v, err := res.Pheromones.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, col.field.Level(1, 2), v)
}
