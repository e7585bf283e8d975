// Package tsp - dispatcher and run bookkeeping.
//
// SolveWithMatrix is the canonical entry point: it routes on Options.Algo to
// RunAntSystem or RunHybrid. Both loops share the recorder below, which keeps
// the running best, the Result history and the Observer stream in step.
package tsp

import (
	"math"

	"github.com/katalvlaran/antga/matrix"
)

// SolveWithMatrix validates inputs and routes to the chosen algorithm.
//
// Contracts:
//   - dist is square with n ≥ 2, finite, non-negative and a zero diagonal.
//   - opts starts from DefaultOptions; zero values are not defaults.
//
// Errors: ErrInvalidConfiguration (wrapping ErrUnsupportedAlgorithm, matrix
// sentinels or a field-specific reason) and ErrDegenerateDistance.
func SolveWithMatrix(dist matrix.Matrix, opts Options) (Result, error) {
	switch opts.Algo {
	case AntSystem:
		return RunAntSystem(dist, opts)
	case GAHybrid:
		return RunHybrid(dist, opts)
	default:
		return Result{}, invalid(ErrUnsupportedAlgorithm)
	}
}

// recorder accumulates the Result of one run.
type recorder struct {
	res      Result
	observer Observer
	keep     bool
}

func newRecorder(opts Options, col *Colony) *recorder {
	res := newResult()
	res.InitialPheromone = col.InitialPheromone()

	return &recorder{res: res, observer: opts.Observer, keep: !opts.DiscardHistory}
}

// offer records length if it strictly improves the running best; tour is
// only materialised on improvement.
func (r *recorder) offer(length float64, iteration int, tour func() Tour) {
	if math.IsNaN(length) || !(length < r.res.BestLength) {
		return
	}
	r.res.BestLength = length
	r.res.BestIteration = iteration
	r.res.BestTour = tour()
}

// emit appends o to the history and forwards it to the observer.
func (r *recorder) emit(o Observation) {
	if r.keep {
		r.res.History = append(r.res.History, o)
	}
	if r.observer != nil {
		r.observer.Observe(o)
	}
}

// result returns the Result accumulated so far.
func (r *recorder) result() Result { return r.res }

// finish attaches a copy of col's field and returns the Result.
func (r *recorder) finish(col *Colony) Result {
	r.res.Pheromones = col.field.Snapshot()

	return r.res
}
