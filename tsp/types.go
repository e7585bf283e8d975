// Package tsp - shared types, options and sentinel errors.
//
// This file is the single source of truth for:
//   - Sentinel errors returned by every solver (match them with errors.Is).
//   - Algorithm selection and Options with DefaultOptions.
//   - Result and the progress Observation stream.
package tsp

import (
	"errors"
	"math"

	"github.com/katalvlaran/antga/matrix"
)

// Configuration-time error taxonomy. Every validation failure is wrapped in
// ErrInvalidConfiguration; the more specific matrix sentinels are wrapped
// alongside it so that both match with errors.Is.
var (
	// ErrInvalidConfiguration reports options or inputs that cannot start a run.
	ErrInvalidConfiguration = errors.New("tsp: invalid configuration")

	// ErrDegenerateDistance reports distances that would make the pheromone
	// model infinite (a zero-length nearest-neighbour tour), or any zero
	// off-diagonal distance when Options.RejectZeroDistance is set.
	ErrDegenerateDistance = errors.New("tsp: degenerate distance")

	// ErrDimensionMismatch reports shape errors: n<2, NaN entries, tours of the
	// wrong length or tours that are not permutations.
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrNonSquare reports a distance matrix that is not n×n.
	ErrNonSquare = errors.New("tsp: matrix is not square")

	// ErrNonZeroDiagonal reports d(i,i) != 0.
	ErrNonZeroDiagonal = errors.New("tsp: non-zero diagonal")

	// ErrNegativeWeight reports a negative distance.
	ErrNegativeWeight = errors.New("tsp: negative distance")

	// ErrIncompleteGraph reports ±Inf ("missing edge") distances; ant
	// construction requires a complete graph.
	ErrIncompleteGraph = errors.New("tsp: incomplete distance matrix")

	// ErrUnsupportedAlgorithm reports an unknown Options.Algo value.
	ErrUnsupportedAlgorithm = errors.New("tsp: unsupported algorithm")

	// ErrTourIncomplete reports a pheromone update requested while an ant
	// has not closed its tour yet.
	ErrTourIncomplete = errors.New("tsp: tour not complete")
)

// Algorithm selects the orchestration loop run by SolveWithMatrix.
type Algorithm int

const (
	// AntSystem runs plain Ant System rounds.
	AntSystem Algorithm = iota
	// GAHybrid interleaves Ant System rounds with genetic-algorithm generations
	// and feeds the GA tours back into the pheromone field.
	GAHybrid
)

// String returns the CLI name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AntSystem:
		return "antSystem"
	case GAHybrid:
		return "gaHybrid"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a CLI name ("antSystem", "gaHybrid") to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "antSystem", "as", "AS":
		return AntSystem, nil
	case "gaHybrid", "hybrid", "ga":
		return GAHybrid, nil
	default:
		return 0, ErrUnsupportedAlgorithm
	}
}

// Reference hyper-parameters.
const (
	DefaultAnts          = 20
	DefaultAlpha         = 1.5
	DefaultBeta          = 3.5
	DefaultEvaporation   = 0.5
	DefaultIterations    = 10
	DefaultASRounds      = 10
	DefaultGAGenerations = 10
	DefaultCrossoverProb = 0.9
	DefaultMutationProb  = 0.5
)

// Options configures a run. Zero values are not defaults; start from
// DefaultOptions and override fields.
type Options struct {
	// Algo selects the orchestration loop.
	Algo Algorithm

	// Ants is the colony size m; it is also the GA population size.
	Ants int

	// Alpha and Beta weight pheromone and inverse distance (both > 0).
	Alpha float64
	Beta  float64

	// Evaporation is ρ ∈ [0,1]; 0 keeps every level, 1 wipes the field
	// before reinforcement.
	Evaporation float64

	// Iterations is the number of Ant System rounds (AntSystem) or outer
	// iterations (GAHybrid).
	Iterations int

	// ASRounds and GAGenerations size one hybrid outer iteration.
	ASRounds      int
	GAGenerations int

	// CrossoverProb and MutationProb are per-pair and per-individual
	// probabilities in [0,1].
	CrossoverProb float64
	MutationProb  float64

	// Seed feeds the run's random stream; 0 selects a fixed default seed.
	Seed int64

	// Workers bounds concurrent ant construction; 0 or 1 is sequential.
	// Results are identical for every value.
	Workers int

	// RejectZeroDistance turns zero off-diagonal distances into
	// ErrDegenerateDistance instead of treating them as maximal desirability.
	RejectZeroDistance bool

	// DiscardHistory drops Result.History; the Observer still sees every step.
	DiscardHistory bool

	// Observer, when non-nil, receives every Observation synchronously.
	Observer Observer
}

// DefaultOptions returns the reference configuration for a hybrid run.
func DefaultOptions() Options {
	return Options{
		Algo:          GAHybrid,
		Ants:          DefaultAnts,
		Alpha:         DefaultAlpha,
		Beta:          DefaultBeta,
		Evaporation:   DefaultEvaporation,
		Iterations:    DefaultIterations,
		ASRounds:      DefaultASRounds,
		GAGenerations: DefaultGAGenerations,
		CrossoverProb: DefaultCrossoverProb,
		MutationProb:  DefaultMutationProb,
	}
}

// Phase tags the origin of an Observation.
type Phase int

const (
	// PhaseAntSystem marks one Ant System round.
	PhaseAntSystem Phase = iota
	// PhaseGenetic marks one GA generation.
	PhaseGenetic
	// PhaseHybrid marks the end of one hybrid outer iteration.
	PhaseHybrid
)

// String returns a short label used by reports and metrics.
func (p Phase) String() string {
	switch p {
	case PhaseAntSystem:
		return "ant_system"
	case PhaseGenetic:
		return "genetic"
	case PhaseHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// Observation is one progress record.
//
// Outer is the 1-based outer iteration (equal to Step for plain Ant System),
// Step the 1-based round/generation inside it. RoundBest is the best length
// of this step alone and Best the running best of the run. Mean and StdDev
// describe the GA population and are zero for other phases.
type Observation struct {
	Phase     Phase
	Outer     int
	Step      int
	RoundBest float64
	Best      float64
	Mean      float64
	StdDev    float64
}

// Observer receives observations synchronously on the solver goroutine.
type Observer interface {
	Observe(Observation)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Observation)

// Observe calls f(o).
func (f ObserverFunc) Observe(o Observation) { f(o) }

// Result is the outcome of a run.
type Result struct {
	// BestLength is the shortest tour length seen; +Inf when nothing ran.
	BestLength float64

	// BestIteration is the 1-based (outer) iteration that first reached
	// BestLength, or -1 when nothing was recorded.
	BestIteration int

	// BestTour is the visiting order that achieved BestLength (nil if none).
	BestTour Tour

	// History holds every observation unless Options.DiscardHistory is set.
	History []Observation

	// InitialPheromone is the seed level m/C_nn of the run's field.
	InitialPheromone float64

	// Pheromones is a copy of the field as the run left it; nil when the
	// run failed before the colony existed.
	Pheromones *matrix.Dense
}

// newResult returns the "nothing recorded yet" result.
func newResult() Result {
	return Result{BestLength: math.Inf(1), BestIteration: -1}
}
