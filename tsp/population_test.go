package tsp_test

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/antga/tsp"
)

// randomTours draws k random permutations of n cities.
func randomTours(k, n int, seed int64) []tsp.Tour {
	r := rand.New(rand.NewSource(seed))
	out := make([]tsp.Tour, k)
	for i := range out {
		out[i] = tsp.Tour(r.Perm(n))
	}

	return out
}

// TestOrderCrossover_AllCuts checks that every cut of every parent pair gives
// a valid permutation with the expected prefix and fill order.
func TestOrderCrossover_AllCuts(t *testing.T) {
	for n := 2; n <= 9; n++ {
		parents := randomTours(6, n, int64(100+n))
		for _, a := range parents {
			for _, b := range parents {
				for cut := 1; cut <= n-1; cut++ {
					child, err := tsp.OrderCrossover(a, b, cut)
					require.NoError(t, err)
					requirePermutation(t, child, n)
					require.Equal(t, a[:cut], child[:cut])

					// The tail is b with the prefix cities removed, order kept.
					var tail tsp.Tour
					for _, c := range b {
						if !slices.Contains(a[:cut], c) {
							tail = append(tail, c)
						}
					}
					require.Equal(t, tail, child[cut:])
				}
			}
		}
	}
}

// TestOrderCrossover_Example locks a hand-checked case.
func TestOrderCrossover_Example(t *testing.T) {
	a := tsp.Tour{0, 1, 2, 3, 4, 5}
	b := tsp.Tour{5, 3, 1, 0, 4, 2}
	child, err := tsp.OrderCrossover(a, b, 2)
	require.NoError(t, err)
	require.Equal(t, tsp.Tour{0, 1, 5, 3, 4, 2}, child)

	_, err = tsp.OrderCrossover(a, b, 0)
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
	_, err = tsp.OrderCrossover(a, b, 6)
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
	_, err = tsp.OrderCrossover(a, tsp.Tour{0, 1, 2}, 1)
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
}

// TestPopulation_OnePointCrossover checks validity, size and that parents are
// untouched, for pc=1 and pc=0 and odd sizes.
func TestPopulation_OnePointCrossover(t *testing.T) {
	const n = 10
	m := circle(t, n)
	for _, size := range []int{1, 2, 7, 8} {
		tours := randomTours(size, n, int64(size))
		snapshot := make([]tsp.Tour, size)
		for i := range tours {
			snapshot[i] = tours[i].Clone()
		}

		pop, err := tsp.NewPopulation(m, tours, 1, 0, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		kids := pop.OnePointCrossover()
		require.Equal(t, size, kids.Len())
		for i := 0; i < kids.Len(); i++ {
			requirePermutation(t, kids.At(i).Tour(), n)
		}
		require.Equal(t, snapshot, pop.Tours(), "parent population must not change")
		require.Equal(t, snapshot, tours, "caller tours must not change")

		// pc=0: children are the parents, reordered.
		pop0, err := tsp.NewPopulation(m, tours, 0, 0, rand.New(rand.NewSource(7)))
		require.NoError(t, err)
		same := pop0.OnePointCrossover().Tours()
		require.ElementsMatch(t, snapshot, same)
	}
}

// TestPopulation_SwapMutation checks that pm=1 changes exactly two positions
// of every tour and pm=0 changes none.
func TestPopulation_SwapMutation(t *testing.T) {
	const n = 12
	m := circle(t, n)
	tours := randomTours(20, n, 3)

	pop, err := tsp.NewPopulation(m, tours, 0, 1, rand.New(rand.NewSource(11)))
	require.NoError(t, err)
	mutated := pop.SwapMutation()
	require.Equal(t, pop.Len(), mutated.Len())
	for k := 0; k < pop.Len(); k++ {
		before, after := pop.At(k).Tour(), mutated.At(k).Tour()
		requirePermutation(t, after, n)
		var diff []int
		for p := range before {
			if before[p] != after[p] {
				diff = append(diff, p)
			}
		}
		require.Len(t, diff, 2, "before %v after %v", before, after)
		require.Equal(t, before[diff[0]], after[diff[1]])
		require.Equal(t, before[diff[1]], after[diff[0]])
	}

	pop0, err := tsp.NewPopulation(m, tours, 0, 0, nil)
	require.NoError(t, err)
	require.Equal(t, pop0.Tours(), pop0.SwapMutation().Tours())
}

// TestPopulation_SwapMutation_TwoCities checks the redraw loop terminates and
// always swaps on the smallest instance.
func TestPopulation_SwapMutation_TwoCities(t *testing.T) {
	m := mustDense(t, [][]float64{{0, 1}, {1, 0}})
	pop, err := tsp.NewPopulation(m, []tsp.Tour{{0, 1}}, 0, 1, nil)
	require.NoError(t, err)
	require.Equal(t, tsp.Tour{1, 0}, pop.SwapMutation().At(0).Tour())
}

// TestTournament_Bound checks the winner is never worse than the worse
// contestant (in fact it is the better one).
func TestTournament_Bound(t *testing.T) {
	const n = 8
	m := circle(t, n)
	pop, err := tsp.NewPopulation(m, randomTours(10, n, 5), 0.5, 0.5, nil)
	require.NoError(t, err)
	for i := 0; i < pop.Len(); i++ {
		for j := 0; j < pop.Len(); j++ {
			a, b := pop.At(i), pop.At(j)
			w := tsp.ExportedTournament(a, b)
			require.LessOrEqual(t, w.Fitness(), math.Max(a.Fitness(), b.Fitness()))
			require.Equal(t, math.Min(a.Fitness(), b.Fitness()), w.Fitness())
		}
	}
}

// TestPopulation_TournamentSelection checks selected tours come from the
// pool and selection never worsens the best.
func TestPopulation_TournamentSelection(t *testing.T) {
	const n = 9
	m := circle(t, n)
	pop, err := tsp.NewPopulation(m, randomTours(15, n, 9), 0.5, 0.5, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	sel := pop.TournamentSelection()
	require.Equal(t, pop.Len(), sel.Len())
	parents := pop.Tours()
	worst := slices.Max(pop.TourLengths())
	for i := 0; i < sel.Len(); i++ {
		require.Contains(t, parents, sel.At(i).Tour())
		require.LessOrEqual(t, sel.At(i).Fitness(), worst)
	}
	require.GreaterOrEqual(t, sel.BestFitness(), pop.BestFitness())
}

// TestIndividual_FitnessRecomputed checks fitness equals TourCost.
func TestIndividual_FitnessRecomputed(t *testing.T) {
	const n = 7
	m := circle(t, n)
	pop, err := tsp.NewPopulation(m, randomTours(4, n, 1), 0.9, 0.5, nil)
	require.NoError(t, err)
	for g := 0; g < 5; g++ {
		for i := 0; i < pop.Len(); i++ {
			cost, err := tsp.TourCost(m, pop.At(i).Tour())
			require.NoError(t, err)
			require.InDelta(t, cost, pop.At(i).Fitness(), epsTiny)
		}
		pop = pop.Next()
	}
}

// TestPopulation_Stats checks mean and sample standard deviation.
func TestPopulation_Stats(t *testing.T) {
	// Two tours on the unit square: the perimeter (4) and a crossing tour (2+2√2).
	m := unitSquare(t)
	pop, err := tsp.NewPopulation(m, []tsp.Tour{{0, 1, 2, 3}, {0, 2, 1, 3}}, 0, 0, nil)
	require.NoError(t, err)

	cross := 2 + 2*math.Sqrt2
	mean, std := pop.Stats()
	require.InDelta(t, (4+cross)/2, mean, epsTiny)
	require.InDelta(t, math.Abs(cross-4)/math.Sqrt2, std, epsTiny)
	require.InDelta(t, 4.0, pop.BestFitness(), epsTiny)
	require.Equal(t, tsp.Tour{0, 1, 2, 3}, pop.BestIndividual().Tour())

	single, err := tsp.NewPopulation(m, []tsp.Tour{{0, 1, 2, 3}}, 0, 0, nil)
	require.NoError(t, err)
	mean, std = single.Stats()
	require.InDelta(t, 4.0, mean, epsTiny)
	require.Zero(t, std)
}

// TestNewPopulation_Errors covers input validation.
func TestNewPopulation_Errors(t *testing.T) {
	m := unitSquare(t)
	_, err := tsp.NewPopulation(m, nil, 0.5, 0.5, nil)
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
	_, err = tsp.NewPopulation(m, []tsp.Tour{{0, 1, 2}}, 0.5, 0.5, nil)
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
	_, err = tsp.NewPopulation(m, []tsp.Tour{{0, 1, 2, 3}}, 2, 0.5, nil)
	require.ErrorIs(t, err, tsp.ErrInvalidConfiguration)
	_, err = tsp.NewPopulation(m, []tsp.Tour{{0, 1, 2, 3}}, 0.5, -1, nil)
	require.ErrorIs(t, err, tsp.ErrInvalidConfiguration)
	_, err = tsp.NewPopulation(testDense{a: [][]float64{{0, 1}}}, []tsp.Tour{{0}}, 0.5, 0.5, nil)
	require.ErrorIs(t, err, tsp.ErrNonSquare)
}
