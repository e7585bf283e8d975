// Package tsp - plain Ant System loop.
package tsp

import "github.com/katalvlaran/antga/matrix"

// RunAntSystem runs opts.Iterations Ant System rounds on dist.
//
// Each round: construct every tour → record the round best → evaporate and
// reinforce → reset the ants. Result.BestIteration is the 1-based round in
// which BestLength was first reached; Iterations==0 returns the
// "nothing recorded" result (BestLength=+Inf, BestIteration=-1).
//
// Errors: validation sentinels wrapped in ErrInvalidConfiguration;
// ErrDegenerateDistance when the nearest-neighbour seed is 0.
//
// Complexity: O(Iterations · m · n²).
func RunAntSystem(dist matrix.Matrix, opts Options) (Result, error) {
	opts.Algo = AntSystem
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
	for it := 1; it <= opts.Iterations; it++ {
		if err = antSystemRound(col, rec, it, it); err != nil {
			return rec.result(), err
		}
		col.Reset()
	}

	return rec.finish(col), nil
}

// antSystemRound constructs one batch of tours, records it under the given
// outer iteration and step, and updates the field. The caller resets the ants.
func antSystemRound(col *Colony, rec *recorder, outer, step int) error {
	col.ConstructTours()
	roundBest := col.BestTourLength()
	rec.offer(roundBest, outer, col.BestTour)
	rec.emit(Observation{
		Phase:     PhaseAntSystem,
		Outer:     outer,
		Step:      step,
		RoundBest: roundBest,
		Best:      rec.res.BestLength,
	})

	return col.UpdatePheromones()
}
