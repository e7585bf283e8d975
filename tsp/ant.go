// Package tsp - the ant: stepwise probabilistic tour construction.
//
// Protocol:
//
//	Reset(view) → Move() × (n-1) → Close()
//
// Each Move extends the partial tour by one city chosen with probability
//
//	p(j) = τ(i,j)^α · (1/d(i,j))^β / Σ_k τ(i,k)^α · (1/d(i,k))^β   (j,k unvisited)
//
// sampled by inverse CDF in index order. The stepwise form lets the colony
// advance every ant by one step before any ant takes the next; Construct
// runs the same steps in one call and yields the same tour.
//
// Sampling policy:
//   - A draw that overshoots the accumulated mass (FP rounding) falls back to
//     the last city with positive probability.
//   - Σweight of 0, NaN or +Inf (full evaporation, underflow, overflow)
//     degrades to a uniform draw over the unvisited cities.
//   - Zero distance is maximal desirability: if any unvisited city sits at
//     d==0 from the current one, only such cities compete (weighted by τ^α).
package tsp

import (
	"math"
	"math/rand"
)

// Ant builds one closed tour per round. An Ant is driven by one goroutine at a time.
type Ant struct {
	dist  *distTable
	view  PheromoneView
	alpha float64
	beta  float64
	rng   *rand.Rand

	succ    []int     // succ[i] = city after i, or unvisited
	visited []bool    // visited[i] once i is on the partial tour
	weights []float64 // scratch: per-candidate weights of the current step

	start  int
	cur    int
	steps  int // moves made since Reset
	length float64
	tour   Tour // visiting order, set by Close
}

// newAnt allocates an ant and resets it against view.
func newAnt(t *distTable, view PheromoneView, alpha, beta float64, rng *rand.Rand) *Ant {
	a := &Ant{
		dist:    t,
		alpha:   alpha,
		beta:    beta,
		rng:     rng,
		succ:    make([]int, t.n),
		visited: make([]bool, t.n),
		weights: make([]float64, t.n),
	}
	a.Reset(view)

	return a
}

// Reset starts a new tour from a uniformly random city against view.
// A nil view keeps the current one.
func (a *Ant) Reset(view PheromoneView) {
	if view != nil {
		a.view = view
	}
	for i := range a.succ {
		a.succ[i] = unvisited
		a.visited[i] = false
	}
	a.start = a.rng.Intn(a.dist.n)
	a.cur = a.start
	a.visited[a.start] = true
	a.steps = 0
	a.length = 0
	a.tour = nil
}

// Move appends one city to the partial tour. It reports false once all n
// cities are on the tour; the closing edge is added by Close.
func (a *Ant) Move() bool {
	if a.steps >= a.dist.n-1 {
		return false
	}
	next := a.pick()
	a.succ[a.cur] = next
	a.visited[next] = true
	a.length += a.dist.at(a.cur, next)
	a.cur = next
	a.steps++

	return true
}

// Close links the last city back to the start and adds that edge's length.
// It reports false if moves are still pending or the tour is already closed.
func (a *Ant) Close() bool {
	if a.steps < a.dist.n-1 || a.tour != nil {
		return false
	}
	a.succ[a.cur] = a.start
	a.length += a.dist.at(a.cur, a.start)

	// succ is a single cycle by construction.
	a.tour, _ = TourFromSuccessors(a.succ, a.start)

	return true
}

// Construct finishes the current tour (all remaining moves plus the closing
// edge) and returns its length.
func (a *Ant) Construct() float64 {
	for a.Move() {
	}
	a.Close()

	return a.length
}

// Done reports whether the tour is closed.
func (a *Ant) Done() bool { return a.tour != nil }

// Start returns the start city of the current tour.
func (a *Ant) Start() int { return a.start }

// Length returns the running length: the partial path before Close, the
// full cycle afterwards.
func (a *Ant) Length() float64 { return a.length }

// Tour returns a copy of the visiting order beginning at Start, or nil
// while the tour is open.
func (a *Ant) Tour() Tour { return a.tour.Clone() }

// Successors returns a copy of the successor mapping; open slots hold -1.
func (a *Ant) Successors() []int {
	out := make([]int, len(a.succ))
	copy(out, a.succ)

	return out
}

// pick chooses the next city from a.cur.
func (a *Ant) pick() int {
	var (
		n        = a.dist.n
		from     = a.cur
		zeroOnly bool
		total    float64
		j        int
		d        float64
		w        float64
	)
	for j = 0; j < n; j++ {
		if !a.visited[j] && a.dist.at(from, j) == 0 {
			zeroOnly = true
			break
		}
	}

	for j = 0; j < n; j++ {
		if a.visited[j] {
			a.weights[j] = 0
			continue
		}
		d = a.dist.at(from, j)
		switch {
		case zeroOnly && d != 0:
			w = 0
		case zeroOnly:
			w = math.Pow(a.view.Level(from, j), a.alpha)
		default:
			w = math.Pow(a.view.Level(from, j), a.alpha) * math.Pow(1/d, a.beta)
		}
		a.weights[j] = w
		total += w
	}

	// !(total > 0) also catches NaN.
	if !(total > 0) || math.IsInf(total, 1) {
		return a.pickUniform(zeroOnly)
	}

	var (
		r    = a.rng.Float64()
		cum  float64
		last = -1
	)
	for j = 0; j < n; j++ {
		if a.weights[j] <= 0 {
			continue
		}
		cum += a.weights[j] / total
		last = j
		if cum >= r {
			return j
		}
	}

	return last
}

// pickUniform draws uniformly among unvisited cities, restricted to those at
// zero distance when zeroOnly is set.
func (a *Ant) pickUniform(zeroOnly bool) int {
	var (
		n     = a.dist.n
		from  = a.cur
		count int
		j     int
	)
	eligible := func(j int) bool {
		return !a.visited[j] && (!zeroOnly || a.dist.at(from, j) == 0)
	}
	for j = 0; j < n; j++ {
		if eligible(j) {
			count++
		}
	}
	k := a.rng.Intn(count)
	for j = 0; j < n; j++ {
		if !eligible(j) {
			continue
		}
		if k == 0 {
			return j
		}
		k--
	}

	// Unreachable: count > 0 whenever a move is pending.
	return -1
}
