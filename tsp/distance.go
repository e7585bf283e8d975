// Package tsp - prefetched distance table.
//
// Every run copies the caller's matrix.Matrix once into a flat row-major
// buffer (w[i*n+j] ~ At(i,j)). The table is immutable afterwards and shared
// by reference between the colony, every ant and every individual, so hot
// loops pay neither interface indirection nor error checks.
package tsp

// distTable is the validated, immutable distance buffer of one run.
type distTable struct {
	n           int       // number of cities
	w           []float64 // row-major distances, len == n*n
	minPositive float64   // smallest strictly positive off-diagonal entry (+Inf if none)
}

// at returns d(i,j). Indices are trusted; callers iterate over [0,n).
func (t *distTable) at(i, j int) float64 { return t.w[i*t.n+j] }

// cycleLength sums the closed cycle of a visiting order:
// d(t0,t1) + ... + d(t[n-2],t[n-1]) + d(t[n-1],t0).
//
// Complexity: O(n).
func (t *distTable) cycleLength(order Tour) float64 {
	var (
		n   = len(order)
		sum float64
		k   int
	)
	if n == 0 {
		return 0
	}
	for k = 0; k < n-1; k++ {
		sum += t.at(order[k], order[k+1])
	}

	return sum + t.at(order[n-1], order[0])
}

// depositFor returns the pheromone amount 1/L a tour of length L deposits on
// each of its edges. A zero-length tour deposits as if it were as short as
// the shortest positive edge, which no positive-length tour can beat.
func (t *distTable) depositFor(length float64) float64 {
	if length > 0 {
		return 1 / length
	}

	return 1 / t.minPositive
}
