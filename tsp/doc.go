// Package tsp approximates the Travelling Salesman Problem with Ant System
// and a hybrid of Ant System and a genetic algorithm.
//
// The engine works on a validated distance matrix (matrix.Matrix, typically
// *matrix.Dense):
//
//   - Ant builds one tour per round, city by city, sampling
//     τ(i,j)^α · (1/d(i,j))^β over the unvisited cities.
//
//   - Colony owns the PheromoneField, seeds it with m/C_nn (C_nn is a
//     nearest-neighbour tour length) and applies evaporation (1-ρ) plus the
//     1/L reinforcement of every tour, both directions of each edge.
//
//   - Population applies tournament selection, order-preserving one-point
//     crossover and swap mutation, each returning a new Population.
//
//   - RunAntSystem and RunHybrid are the two loops; SolveWithMatrix picks
//     one from Options.Algo.
//
// Tours are visiting orders (Tour); Tour.Successors gives the successor
// mapping the ants build internally. Both describe the same closed cycle.
//
// Runs are deterministic for a given Options.Seed, including parallel ant
// construction (Options.Workers). The package does not log; progress is
// delivered through Options.Observer and Result.History.
//
// Use this package when a good tour is needed for instances too large for
// exact methods; no optimality guarantee is given.
package tsp
