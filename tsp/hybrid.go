// Package tsp - hybrid Ant System / genetic algorithm loop.
//
// One outer iteration:
//
//	ASRounds × (construct → record → update)   ants reset between rounds only
//	Population(colony tours) → GAGenerations × Next()
//	if more outer iterations remain: AugmentPheromones(GA tours) → reset ants
//
// The GA starts from the tours of the last Ant System round, and its final
// generation is folded back into the field, so each heuristic seeds the other.
package tsp

import (
	"math/rand"

	"github.com/katalvlaran/antga/matrix"
)

// RunHybrid runs opts.Iterations outer iterations of the hybrid loop.
// Result.BestIteration is the 1-based outer iteration that first reached
// BestLength, whether the tour came from an ant or from the GA.
//
// Errors: validation sentinels wrapped in ErrInvalidConfiguration;
// ErrDegenerateDistance when the nearest-neighbour seed is 0.
//
// Complexity: O(Iterations · (ASRounds · m · n² + GAGenerations · m · n)).
func RunHybrid(dist matrix.Matrix, opts Options) (Result, error) {
	// Hybrid knobs are only validated for GAHybrid.
	opts.Algo = GAHybrid
	t, err := validateAll(dist, opts)
	if err != nil {
		return Result{}, err
	}
	var rng = rngFromSeed(opts.Seed)
	col, err := newColony(t, opts, rng)
	if err != nil {
		return Result{}, err
	}

	rec := newRecorder(opts, col)
	for outer := 1; outer <= opts.Iterations; outer++ {
		if _, err = hybridIteration(col, t, opts, rng, rec, outer); err != nil {
			return rec.result(), err
		}
	}

	return rec.finish(col), nil
}

// hybridIteration runs outer iteration outer (1-based) and returns the final
// GA population. The GA tours go back into the field, followed by an ant
// reset, only when outer < opts.Iterations.
func hybridIteration(col *Colony, t *distTable, opts Options, rng *rand.Rand, rec *recorder, outer int) (*Population, error) {
	// (a) Ant System rounds.
	for round := 1; round <= opts.ASRounds; round++ {
		if err := antSystemRound(col, rec, outer, round); err != nil {
			return nil, err
		}
		if round < opts.ASRounds {
			col.Reset()
		}
	}

	// (b) GA generations over the last round's tours.
	pop := newPopulation(t, col.Tours(), opts.CrossoverProb, opts.MutationProb, rng)
	for gen := 1; gen <= opts.GAGenerations; gen++ {
		pop = pop.Next()
		best := pop.BestIndividual()
		fit := best.Fitness()
		rec.offer(fit, outer, best.Tour)
		mean, std := pop.Stats()
		rec.emit(Observation{
			Phase:     PhaseGenetic,
			Outer:     outer,
			Step:      gen,
			RoundBest: fit,
			Best:      rec.res.BestLength,
			Mean:      mean,
			StdDev:    std,
		})
	}
	rec.emit(Observation{
		Phase:     PhaseHybrid,
		Outer:     outer,
		Step:      outer,
		RoundBest: pop.BestFitness(),
		Best:      rec.res.BestLength,
	})

	// (c) Feed the GA back into the field.
	if outer < opts.Iterations {
		if err := col.AugmentPheromones(pop.Tours(), pop.TourLengths()); err != nil {
			return pop, err
		}
		col.Reset()
	}

	return pop, nil
}
