// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric storage shared by the TSP engine.
//
// What & Why:
//
//	Distance matrices handed to the solvers and the pheromone field mutated
//	by the ant colony are both square float64 tables. Dense keeps them in a
//	single row-major buffer so that hot loops read contiguous memory, while
//	the public surface (At/Set) stays bounds-checked and never panics.
//
// Surface:
//
//   - Matrix: the minimal read/write interface accepted by package tsp.
//   - Dense: row-major implementation with NewDense / NewDenseFrom constructors,
//     Fill, Scale, Apply, Do and no-copy Row views.
//   - ValidateNotNil / ValidateSquare: shape guards shared by callers.
//
// All failures are reported with the sentinels in errors.go; match them with
// errors.Is.
package matrix
