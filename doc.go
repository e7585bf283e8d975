// Package antga approximates the Travelling Salesman Problem with Ant System
// and with a hybrid that interleaves Ant System rounds and genetic-algorithm
// generations over one shared pheromone field.
//
// 🐜 What is in the box?
//
//	tsp/      - Ant, Colony, PheromoneField, Population and the two loops
//	            (RunAntSystem, RunHybrid) behind SolveWithMatrix
//	matrix/   - dense, bounds-checked float64 storage for distances and pheromones
//	tsplib/   - TSPLIB reader (EUC_2D coordinates or an EXPLICIT full matrix)
//	config/   - YAML file, .env and ANTGA_* overrides mapped onto tsp.Options
//	metrics/  - Prometheus Observer and /metrics handler
//	report/   - console tables and .xlsx export of a finished run
//	cmd/antga - command-line front end
//
// Quick start:
//
//	in, _ := tsplib.ReadFile("cities.tsp")
//	dist, _ := in.Distances()
//	res, _ := tsp.SolveWithMatrix(dist, tsp.DefaultOptions())
//	fmt.Println(res.BestLength, res.BestIteration)
//
// A run is deterministic for a fixed Options.Seed, whatever Options.Workers is.
//
//	go install github.com/katalvlaran/antga/cmd/antga@latest
package antga
