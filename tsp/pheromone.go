// Package tsp - pheromone field (owner) and its read-only view.
//
// Ownership:
//   - PheromoneField is owned by exactly one Colony for the whole run and is
//     the only state mutated across rounds.
//   - Ants receive a PheromoneView: they can read levels while constructing
//     but have no method to write them. All writes (Evaporate, Deposit,
//     Reinforce, Seed) happen on the run goroutine after construction ends.
//
// Invariants:
//   - Every level is finite and ≥ 0.
//   - Levels stay symmetric: each deposit touches (i,j) and (j,i) together.
package tsp

import (
	"math"

	"github.com/katalvlaran/antga/matrix"
)

// PheromoneView is the read-only surface of the pheromone field.
type PheromoneView interface {
	// Size returns the number of cities n.
	Size() int
	// Level returns τ(i,j). Indices must lie in [0,n).
	Level(i, j int) float64
}

// PheromoneField is the mutable n×n pheromone matrix backed by *matrix.Dense.
type PheromoneField struct {
	m    *matrix.Dense
	rows [][]float64 // no-copy row views into m for hot-path reads
}

var _ PheromoneView = (*PheromoneField)(nil)

// NewPheromoneField allocates an n×n field with every level at tau0.
//
// Errors:
//   - ErrDimensionMismatch for n<1; ErrInvalidConfiguration if tau0 is negative or not finite.
func NewPheromoneField(n int, tau0 float64) (*PheromoneField, error) {
	if n < 1 {
		return nil, ErrDimensionMismatch
	}
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	f := &PheromoneField{m: m, rows: make([][]float64, n)}
	for i := 0; i < n; i++ {
		// Row cannot fail for i in range.
		f.rows[i], _ = m.Row(i)
	}
	if err = f.Seed(tau0); err != nil {
		return nil, err
	}

	return f, nil
}

// Size returns n.
func (f *PheromoneField) Size() int { return len(f.rows) }

// Level returns τ(i,j).
func (f *PheromoneField) Level(i, j int) float64 { return f.rows[i][j] }

// Seed resets every level (diagonal included) to tau0.
func (f *PheromoneField) Seed(tau0 float64) error {
	if !(tau0 >= 0) || math.IsInf(tau0, 0) {
		return invalidf("pheromone seed must be finite and >= 0 (got %g)", tau0)
	}

	return f.m.Fill(tau0)
}

// Evaporate multiplies every level by (1-rho). rho is validated upstream to
// lie in [0,1], so levels never become negative; rho==1 zeroes the field.
//
// Complexity: O(n²).
func (f *PheromoneField) Evaporate(rho float64) error {
	if !inUnitInterval(rho) {
		return invalidf("evaporation must be in [0,1] (got %g)", rho)
	}

	return f.m.Scale(1 - rho)
}

// Deposit adds amount to the edge {i,j} in both directions.
// The (j,i) entry mirrors the updated (i,j) entry.
func (f *PheromoneField) Deposit(i, j int, amount float64) {
	f.rows[i][j] += amount
	f.rows[j][i] = f.rows[i][j]
}

// Reinforce deposits amount on every edge of the closed cycle t,
// closing edge t[n-1]→t[0] included.
//
// Complexity: O(n).
func (f *PheromoneField) Reinforce(t Tour, amount float64) {
	var (
		n = len(t)
		k int
	)
	for k = 0; k < n; k++ {
		f.Deposit(t[k], t[(k+1)%n], amount)
	}
}

// Snapshot returns an independent copy of the levels for reporting/tests.
func (f *PheromoneField) Snapshot() *matrix.Dense {
	return f.m.Clone().(*matrix.Dense)
}
