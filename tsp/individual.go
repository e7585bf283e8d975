package tsp

// Individual is one GA member: a tour over the run's shared distance table.
// Fitness is the closed-cycle length, recomputed on every call.
type Individual struct {
	tour Tour
	dist *distTable
}

// Tour returns a copy of the visiting order.
func (ind Individual) Tour() Tour { return ind.tour.Clone() }

// Fitness returns the tour length (lower is fitter).
func (ind Individual) Fitness() float64 { return ind.dist.cycleLength(ind.tour) }

// clone returns an Individual that owns its own tour.
func (ind Individual) clone() Individual {
	return Individual{tour: ind.tour.Clone(), dist: ind.dist}
}
