package tsp

// Test bridge: unexported helpers exposed to tsp_test only.
var (
	ExportedTournament  = tournament
	ExportedRNGFromSeed = rngFromSeed
	ExportedDeriveSeed  = deriveSeed
	ExportedPermRange   = permRange
)
