// Package tsp - the colony: one pheromone field, m ants, one round at a time.
//
// A round is ConstructTours → (BestTourLength/Tours) → UpdatePheromones → Reset.
// AugmentPheromones applies the same evaporate+reinforce rule to tours that
// come from elsewhere (the genetic phase of the hybrid loop).
//
// Concurrency:
//   - ConstructTours may run ants on a bounded goroutine pool (Options.Workers).
//     During construction ants only read the field; every write happens on the
//     caller's goroutine after the pool has drained.
//   - Each ant owns an RNG stream derived at creation, so the tours do not
//     depend on scheduling: any Workers value yields the same tours.
package tsp

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sourcegraph/conc/pool"

	"github.com/katalvlaran/antga/matrix"
)

// Colony owns the pheromone field of a run and the ants that read it.
type Colony struct {
	dist    *distTable
	field   *PheromoneField
	ants    []*Ant
	rho     float64
	workers int
	tau0    float64
}

// NewColony validates dist and opts, seeds the pheromone field with m/C_nn
// and creates opts.Ants ants. rng drives the nearest-neighbour start and the
// per-ant streams; nil selects rngFromSeed(opts.Seed).
//
// Errors:
//   - ErrInvalidConfiguration (with the specific sentinel) on bad input.
//   - ErrDegenerateDistance when the nearest-neighbour tour has length 0.
//
// Complexity: O(n²) validation and seeding, O(m·n) ant allocation.
func NewColony(dist matrix.Matrix, opts Options, rng *rand.Rand) (*Colony, error) {
	t, err := validateAll(dist, opts)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rngFromSeed(opts.Seed)
	}

	return newColony(t, opts, rng)
}

// newColony builds a colony over an already validated table.
func newColony(t *distTable, opts Options, rng *rand.Rand) (*Colony, error) {
	cnn := nearestNeighborLength(t, rng.Intn(t.n))
	if !(cnn > 0) {
		return nil, invalid(fmt.Errorf("%w: nearest-neighbour tour length is %g", ErrDegenerateDistance, cnn))
	}
	tau0 := float64(opts.Ants) / cnn
	if math.IsInf(tau0, 0) {
		return nil, invalid(fmt.Errorf("%w: pheromone seed overflows (C_nn=%g)", ErrDegenerateDistance, cnn))
	}

	field, err := NewPheromoneField(t.n, tau0)
	if err != nil {
		return nil, err
	}

	c := &Colony{
		dist:    t,
		field:   field,
		ants:    make([]*Ant, opts.Ants),
		rho:     opts.Evaporation,
		workers: opts.Workers,
		tau0:    tau0,
	}
	for k := range c.ants {
		c.ants[k] = newAnt(t, field, opts.Alpha, opts.Beta, deriveRNG(rng, uint64(k)))
	}

	return c, nil
}

// Size returns the number of ants m.
func (c *Colony) Size() int { return len(c.ants) }

// Ants exposes the ants for stepwise driving; the slice is shared.
func (c *Colony) Ants() []*Ant { return c.ants }

// InitialPheromone returns the seed level m/C_nn.
func (c *Colony) InitialPheromone() float64 { return c.tau0 }

// Pheromones returns the read-only view of the field.
func (c *Colony) Pheromones() PheromoneView { return c.field }

// ConstructTours completes every ant's tour for the current round.
// Sequentially, ants advance breadth-first: all ants take step k before
// any ant takes step k+1.
func (c *Colony) ConstructTours() {
	if c.workers <= 1 || len(c.ants) < 2 {
		for moved := true; moved; {
			moved = false
			for _, a := range c.ants {
				if a.Move() {
					moved = true
				}
			}
		}
		for _, a := range c.ants {
			a.Close()
		}

		return
	}

	p := pool.New().WithMaxGoroutines(c.workers)
	for _, a := range c.ants {
		a := a
		p.Go(func() { a.Construct() })
	}
	p.Wait()
}

// BestTourLength returns the shortest closed tour among the current ants,
// +Inf if none is closed.
func (c *Colony) BestTourLength() float64 {
	if k := c.bestAnt(); k >= 0 {
		return c.ants[k].length
	}

	return math.Inf(1)
}

// BestTour returns a copy of the tour behind BestTourLength (nil if none).
func (c *Colony) BestTour() Tour {
	if k := c.bestAnt(); k >= 0 {
		return c.ants[k].Tour()
	}

	return nil
}

// bestAnt returns the index of the first closed ant with minimal length, or -1.
func (c *Colony) bestAnt() int {
	var (
		best     = -1
		shortest = math.Inf(1)
	)
	for k, a := range c.ants {
		if a.Done() && (best < 0 || a.length < shortest) {
			best, shortest = k, a.length
		}
	}

	return best
}

// Tours returns copies of every ant's tour in ant order.
func (c *Colony) Tours() []Tour {
	out := make([]Tour, len(c.ants))
	for k, a := range c.ants {
		out[k] = a.Tour()
	}

	return out
}

// TourLengths returns every ant's current length in ant order.
func (c *Colony) TourLengths() []float64 {
	out := make([]float64, len(c.ants))
	for k, a := range c.ants {
		out[k] = a.length
	}

	return out
}

// UpdatePheromones applies the Ant System rule: evaporate every level by
// (1-ρ), then deposit 1/L_k on each edge of ant k's tour, both directions.
//
// Errors:
//   - ErrTourIncomplete if some ant has not closed its tour.
func (c *Colony) UpdatePheromones() error {
	for k, a := range c.ants {
		if !a.Done() {
			return fmt.Errorf("%w: ant %d", ErrTourIncomplete, k)
		}
	}
	if err := c.field.Evaporate(c.rho); err != nil {
		return err
	}
	for _, a := range c.ants {
		c.field.Reinforce(a.tour, c.dist.depositFor(a.length))
	}

	return nil
}

// AugmentPheromones applies the UpdatePheromones rule to externally supplied
// tours and their lengths. Inputs are checked before the field is touched.
//
// Errors:
//   - ErrDimensionMismatch if len(tours) != len(lengths), a tour is not a
//     permutation of the colony's cities, or a length is NaN, negative or infinite.
func (c *Colony) AugmentPheromones(tours []Tour, lengths []float64) error {
	if len(tours) != len(lengths) {
		return fmt.Errorf("%w: %d tours, %d lengths", ErrDimensionMismatch, len(tours), len(lengths))
	}
	for k := range tours {
		if err := tours[k].Validate(c.dist.n); err != nil {
			return fmt.Errorf("tour %d: %w", k, err)
		}
		if !(lengths[k] >= 0) || math.IsInf(lengths[k], 1) {
			return fmt.Errorf("%w: tour %d has length %g", ErrDimensionMismatch, k, lengths[k])
		}
	}

	if err := c.field.Evaporate(c.rho); err != nil {
		return err
	}
	for k := range tours {
		c.field.Reinforce(tours[k], c.dist.depositFor(lengths[k]))
	}

	return nil
}

// Reset restarts every ant from a fresh random city against the current field.
func (c *Colony) Reset() {
	for _, a := range c.ants {
		a.Reset(c.field)
	}
}
