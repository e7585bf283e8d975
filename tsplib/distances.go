package tsplib

import (
	"math"

	"github.com/katalvlaran/antga/matrix"
)

// Distances returns the n×n Euclidean distance matrix of cities (unrounded,
// zero diagonal, symmetric).
//
// Complexity: O(n²) time and space.
func Distances(cities []City) (*matrix.Dense, error) {
	n := len(cities)
	m, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	err = m.Apply(func(i, j int, _ float64) float64 {
		if i == j {
			return 0
		}

		return math.Hypot(cities[j].X-cities[i].X, cities[j].Y-cities[i].Y)
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Distances returns the instance's distance matrix: a copy of the explicit
// weights, or the Euclidean distances of the coordinates.
func (in *Instance) Distances() (*matrix.Dense, error) {
	if in.Explicit() {
		return matrix.NewDenseFrom(in.Weights)
	}

	return Distances(in.Cities)
}
