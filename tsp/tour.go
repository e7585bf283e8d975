// Package tsp - tour representation and structural utilities.
//
// Representation choice:
//
//	A Tour is the open visiting order of a Hamiltonian cycle: a permutation
//	of {0..n-1} of length n whose closing edge t[n-1] → t[0] is implicit.
//	Ants build tours as a successor mapping (succ[i] = city visited right
//	after i, -1 while unvisited) and convert on completion; Successors()
//	goes the other way. Both forms describe the same cycle and the same
//	length, so pheromone reinforcement and fitness are identical whichever
//	form produced them. Genetic operators work on the visiting order, which
//	keeps every child a single cycle.
//
// Provided helpers:
//   - ValidatePermutation: verify a permutation over {0..n-1}.
//   - Tour.Validate / Tour.Clone / Tour.Successors / Tour.String.
//   - TourFromSuccessors: rebuild a visiting order from a successor mapping.
//
// Design:
//   - No logging and no panics on user input; failures are sentinel errors from types.go.
//   - O(n) time for every helper.
package tsp

import (
	"strconv"
	"strings"
)

// unvisited marks a successor slot that has not been assigned yet.
const unvisited = -1

// Tour is an open visiting order; see the file comment for the contract.
type Tour []int

// ValidatePermutation checks that perm is a permutation of {0..n-1} of length n.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if n <= 0 || len(perm) != n {
		return ErrDimensionMismatch
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = perm[i]
		// Out-of-range element or duplicate violates the bijection contract.
		if v < 0 || v >= n || seen[v] {
			return ErrDimensionMismatch
		}
		seen[v] = true
	}

	return nil
}

// Validate reports whether t visits each of n cities exactly once.
func (t Tour) Validate(n int) error {
	return ValidatePermutation(t, n)
}

// Clone returns an independent copy (nil stays nil).
func (t Tour) Clone() Tour {
	if t == nil {
		return nil
	}
	out := make(Tour, len(t))
	copy(out, t)

	return out
}

// Successors returns the successor mapping of the cycle:
// succ[t[k]] = t[(k+1) mod n].
//
// Complexity: O(n) time, O(n) space.
func (t Tour) Successors() []int {
	var (
		n    = len(t)
		succ = make([]int, n)
		k    int
	)
	for k = 0; k < n; k++ {
		succ[t[k]] = t[(k+1)%n]
	}

	return succ
}

// TourFromSuccessors walks succ from start and returns the visiting order.
//
// Errors:
//   - ErrDimensionMismatch if succ contains out-of-range entries, unvisited
//     sentinels, or describes more than one cycle.
//
// Complexity: O(n) time, O(n) space.
func TourFromSuccessors(succ []int, start int) (Tour, error) {
	var n = len(succ)
	if n == 0 || start < 0 || start >= n {
		return nil, ErrDimensionMismatch
	}

	var (
		out  = make(Tour, 0, n)
		seen = make([]bool, n)
		cur  = start
	)
	for len(out) < n {
		if cur < 0 || cur >= n || seen[cur] {
			return nil, ErrDimensionMismatch
		}
		seen[cur] = true
		out = append(out, cur)
		cur = succ[cur]
	}
	// After n hops the walk must be back at the start: a single cycle.
	if cur != start {
		return nil, ErrDimensionMismatch
	}

	return out, nil
}

// String renders the closed cycle, e.g. "[0 3 1 2 | 0]" where the bar marks closure.
func (t Tour) String() string {
	if len(t) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[")
	for i, v := range t {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteString(" | ")
	b.WriteString(strconv.Itoa(t[0]))
	b.WriteString("]")

	return b.String()
}
