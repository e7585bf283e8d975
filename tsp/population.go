// Package tsp - genetic operators over a population of tours.
//
// Every operator returns a new Population whose Individuals own fresh tour
// copies; the receiver is never modified. The RNG stream is shared with the
// population that produced the receiver, so a chain of generations draws
// from one deterministic sequence.
//
// Operators:
//   - TournamentSelection: binary tournament with replacement.
//   - OnePointCrossover: shuffled disjoint pairs, order-preserving repair.
//   - SwapMutation: exchange two distinct positions.
package tsp

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/antga/matrix"
)

// Population is an ordered set of Individuals plus GA probabilities.
type Population struct {
	dist    *distTable
	members []Individual
	pc      float64
	pm      float64
	rng     *rand.Rand
}

// NewPopulation validates dist and copies tours into a new population.
// pc and pm are the crossover and mutation probabilities; rng nil selects
// the default seed.
//
// Errors:
//   - ErrInvalidConfiguration for probabilities outside [0,1] or a bad matrix.
//   - ErrDimensionMismatch if tours is empty or a tour is not a permutation.
func NewPopulation(dist matrix.Matrix, tours []Tour, pc, pm float64, rng *rand.Rand) (*Population, error) {
	if !inUnitInterval(pc) {
		return nil, invalidf("crossover probability must be in [0,1] (got %g)", pc)
	}
	if !inUnitInterval(pm) {
		return nil, invalidf("mutation probability must be in [0,1] (got %g)", pm)
	}
	t, err := validateDistMatrix(dist, false)
	if err != nil {
		return nil, err
	}
	if len(tours) == 0 {
		return nil, fmt.Errorf("%w: empty population", ErrDimensionMismatch)
	}
	for k := range tours {
		if err = tours[k].Validate(t.n); err != nil {
			return nil, fmt.Errorf("tour %d: %w", k, err)
		}
	}
	if rng == nil {
		rng = rngFromSeed(0)
	}

	return newPopulation(t, tours, pc, pm, rng), nil
}

// newPopulation copies already validated tours.
func newPopulation(t *distTable, tours []Tour, pc, pm float64, rng *rand.Rand) *Population {
	members := make([]Individual, len(tours))
	for k := range tours {
		members[k] = Individual{tour: tours[k].Clone(), dist: t}
	}

	return &Population{dist: t, members: members, pc: pc, pm: pm, rng: rng}
}

// derive wraps members in a population sharing p's table, knobs and stream.
func (p *Population) derive(members []Individual) *Population {
	return &Population{dist: p.dist, members: members, pc: p.pc, pm: p.pm, rng: p.rng}
}

// Len returns the population size.
func (p *Population) Len() int { return len(p.members) }

// At returns the k-th Individual.
func (p *Population) At(k int) Individual { return p.members[k] }

// Tours returns copies of every member's tour in order.
func (p *Population) Tours() []Tour {
	out := make([]Tour, len(p.members))
	for k := range p.members {
		out[k] = p.members[k].Tour()
	}

	return out
}

// TourLengths returns every member's fitness in order.
func (p *Population) TourLengths() []float64 {
	out := make([]float64, len(p.members))
	for k := range p.members {
		out[k] = p.members[k].Fitness()
	}

	return out
}

// BestFitness returns the smallest fitness in the population.
func (p *Population) BestFitness() float64 {
	return p.BestIndividual().Fitness()
}

// BestIndividual returns the first member with the smallest fitness.
func (p *Population) BestIndividual() Individual {
	var (
		best = 0
		fit  = math.Inf(1)
		f    float64
	)
	for k := range p.members {
		if f = p.members[k].Fitness(); f < fit {
			best, fit = k, f
		}
	}

	return p.members[best]
}

// Stats returns the mean and the sample standard deviation of fitness
// (0 for a single member).
func (p *Population) Stats() (mean, std float64) {
	fit := p.TourLengths()
	if len(fit) == 1 {
		return fit[0], 0
	}

	return stat.MeanStdDev(fit, nil)
}

// TournamentSelection draws Len() binary tournaments with replacement and
// keeps a copy of the fitter contestant; on a tie the second one wins.
//
// Complexity: O(Len()·n).
func (p *Population) TournamentSelection() *Population {
	var (
		size = len(p.members)
		out  = make([]Individual, size)
	)
	for k := range out {
		out[k] = tournament(p.members[p.rng.Intn(size)], p.members[p.rng.Intn(size)]).clone()
	}

	return p.derive(out)
}

// tournament returns the fitter of a and b (b on ties).
func tournament(a, b Individual) Individual {
	if a.Fitness() < b.Fitness() {
		return a
	}

	return b
}

// OnePointCrossover shuffles the members into disjoint pairs and, with
// probability pc per pair, recombines them with OrderCrossover at a cut drawn
// from [1, n-1]. Pairs that do not cross, and the odd member out, are copied
// unchanged.
//
// Complexity: O(Len()·n).
func (p *Population) OnePointCrossover() *Population {
	var (
		size  = len(p.members)
		order = permRange(size, p.rng)
		out   = make([]Individual, 0, size)
		n     = p.dist.n
		k     int
	)
	for k = 0; k+1 < size; k += 2 {
		a, b := p.members[order[k]], p.members[order[k+1]]
		if n < 2 || p.rng.Float64() >= p.pc {
			out = append(out, a.clone(), b.clone())
			continue
		}
		cut := 1 + p.rng.Intn(n-1)
		out = append(out,
			Individual{tour: orderCrossover(a.tour, b.tour, cut), dist: p.dist},
			Individual{tour: orderCrossover(b.tour, a.tour, cut), dist: p.dist},
		)
	}
	if size%2 == 1 {
		out = append(out, p.members[order[size-1]].clone())
	}

	return p.derive(out)
}

// SwapMutation copies every member and, with probability pm, swaps the
// cities at two distinct random positions of the copy.
//
// Complexity: O(Len()·n).
func (p *Population) SwapMutation() *Population {
	var (
		n   = p.dist.n
		out = make([]Individual, len(p.members))
	)
	for k := range p.members {
		c := p.members[k].clone()
		if n >= 2 && p.rng.Float64() < p.pm {
			i := p.rng.Intn(n)
			j := p.rng.Intn(n)
			for j == i {
				j = p.rng.Intn(n)
			}
			c.tour[i], c.tour[j] = c.tour[j], c.tour[i]
		}
		out[k] = c
	}

	return p.derive(out)
}

// Next runs one generation: selection → crossover → mutation.
func (p *Population) Next() *Population {
	return p.TournamentSelection().OnePointCrossover().SwapMutation()
}

// OrderCrossover returns the child that keeps a[:cut] and then takes the
// cities of b not yet present, in b's order.
//
// Errors:
//   - ErrDimensionMismatch if a and b are not permutations of the same size
//     or cut is outside [1, n-1].
func OrderCrossover(a, b Tour, cut int) (Tour, error) {
	var n = len(a)
	if err := a.Validate(n); err != nil {
		return nil, err
	}
	if err := b.Validate(n); err != nil {
		return nil, err
	}
	if n < 2 || cut < 1 || cut > n-1 {
		return nil, fmt.Errorf("%w: cut %d outside [1,%d]", ErrDimensionMismatch, cut, n-1)
	}

	return orderCrossover(a, b, cut), nil
}

// orderCrossover is OrderCrossover without checks.
func orderCrossover(a, b Tour, cut int) Tour {
	var (
		n     = len(a)
		child = make(Tour, 0, n)
		used  = make([]bool, n)
	)
	for _, c := range a[:cut] {
		child = append(child, c)
		used[c] = true
	}
	for _, c := range b {
		if !used[c] {
			child = append(child, c)
			used[c] = true
		}
	}

	return child
}
