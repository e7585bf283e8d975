// Package tsp - nearest-neighbour tour used to seed the pheromone field.
//
// Deterministic given the start: from the start city repeatedly hop to the
// closest unvisited city (ties → smallest index), then close the loop.
package tsp

import "math"

// nearestNeighborLength returns the length C_nn of the greedy tour from start.
//
// Contracts:
//   - 0 ≤ start < t.n; t.n ≥ 2 (validated upstream).
//
// Complexity: O(n²) time, O(n) space.
func nearestNeighborLength(t *distTable, start int) float64 {
	var (
		n       = t.n
		visited = make([]bool, n)
		cur     = start
		length  float64
		step    int
		j       int
	)
	visited[cur] = true

	for step = 0; step < n-1; step++ {
		var (
			best     = math.Inf(1)
			bestCity = -1
			d        float64
		)
		for j = 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d = t.at(cur, j)
			if d < best {
				best = d
				bestCity = j
			}
		}
		length += best
		cur = bestCity
		visited[cur] = true
	}

	// Close the cycle back to the start.
	return length + t.at(cur, start)
}
