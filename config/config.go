// Package config loads run settings for the antga command.
//
// Sources, lowest precedence first:
//
//  1. Defaults (tsp.DefaultOptions).
//  2. A YAML file (Load).
//  3. ANTGA_* variables (ApplyEnv). The process environment wins over a .env
//     file read with ReadEnvFile: Layered(os.LookupEnv, MapLookup(file)).
//  4. Command-line flags, applied by the caller on the returned Config.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/antga/tsp"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ANTGA_"

// ErrInvalid reports a configuration that cannot start a run.
var ErrInvalid = errors.New("config: invalid")

// Config is the file/env representation of a run.
type Config struct {
	Algorithm          string  `yaml:"algorithm"`
	File               string  `yaml:"file"`
	Ants               int     `yaml:"ants"`
	Alpha              float64 `yaml:"alpha"`
	Beta               float64 `yaml:"beta"`
	Evaporation        float64 `yaml:"evaporation"`
	Iterations         int     `yaml:"iterations"`
	ASRounds           int     `yaml:"as_rounds"`
	GAGenerations      int     `yaml:"ga_generations"`
	CrossoverProb      float64 `yaml:"crossover_probability"`
	MutationProb       float64 `yaml:"mutation_probability"`
	Seed               int64   `yaml:"seed"`
	Workers            int     `yaml:"workers"`
	RejectZeroDistance bool    `yaml:"reject_zero_distance"`
	MetricsAddr        string  `yaml:"metrics_addr"`
}

// Default returns the reference configuration (hybrid, no input file).
func Default() Config {
	o := tsp.DefaultOptions()

	return Config{
		Algorithm:     o.Algo.String(),
		Ants:          o.Ants,
		Alpha:         o.Alpha,
		Beta:          o.Beta,
		Evaporation:   o.Evaporation,
		Iterations:    o.Iterations,
		ASRounds:      o.ASRounds,
		GAGenerations: o.GAGenerations,
		CrossoverProb: o.CrossoverProb,
		MutationProb:  o.MutationProb,
	}
}

// Load returns Default overlaid with the YAML file at path. An empty path
// returns Default unchanged. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err = cfg.decode(data); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// decode overlays YAML data on c.
func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// ReadEnvFile parses a .env file without touching the process environment.
func ReadEnvFile(path string) (map[string]string, error) {
	m, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("config: read env %s: %w", path, err)
	}

	return m, nil
}

// LookupFunc resolves an environment key, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// MapLookup adapts a map (e.g. from ReadEnvFile) to LookupFunc.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// Layered tries each lookup in turn; the first one that knows key wins.
func Layered(lookups ...LookupFunc) LookupFunc {
	return func(key string) (string, bool) {
		for _, l := range lookups {
			if v, ok := l(key); ok {
				return v, true
			}
		}

		return "", false
	}
}

// ApplyEnv overrides fields from ANTGA_<FIELD> variables (the yaml key in
// upper case, e.g. ANTGA_AS_ROUNDS). A nil lookup uses os.LookupEnv.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var (
		errs []error
		get  = func(key string) (string, bool) { return lookup(EnvPrefix + key) }
	)
	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := get(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s=%q: %w", EnvPrefix, key, v, err))
				return
			}
			*dst = n
		}
	}
	flt := func(key string, dst *float64) {
		if v, ok := get(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s=%q: %w", EnvPrefix, key, v, err))
				return
			}
			*dst = f
		}
	}

	str("ALGORITHM", &c.Algorithm)
	str("FILE", &c.File)
	str("METRICS_ADDR", &c.MetricsAddr)
	num("ANTS", &c.Ants)
	num("ITERATIONS", &c.Iterations)
	num("AS_ROUNDS", &c.ASRounds)
	num("GA_GENERATIONS", &c.GAGenerations)
	num("WORKERS", &c.Workers)
	flt("ALPHA", &c.Alpha)
	flt("BETA", &c.Beta)
	flt("EVAPORATION", &c.Evaporation)
	flt("CROSSOVER_PROBABILITY", &c.CrossoverProb)
	flt("MUTATION_PROBABILITY", &c.MutationProb)
	if v, ok := get("SEED"); ok {
		s, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED=%q: %w", EnvPrefix, v, err))
		} else {
			c.Seed = s
		}
	}
	if v, ok := get("REJECT_ZERO_DISTANCE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sREJECT_ZERO_DISTANCE=%q: %w", EnvPrefix, v, err))
		} else {
			c.RejectZeroDistance = b
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}

	return nil
}

// Validate checks the fields the command needs before building options.
// Numeric ranges are checked again, in full, by the solver.
func (c Config) Validate() error {
	if _, err := tsp.ParseAlgorithm(c.Algorithm); err != nil {
		return fmt.Errorf("%w: algorithm %q: %w", ErrInvalid, c.Algorithm, err)
	}
	if c.File == "" {
		return fmt.Errorf("%w: no instance file", ErrInvalid)
	}
	if c.Ants <= 0 {
		return fmt.Errorf("%w: ants must be > 0 (got %d)", ErrInvalid, c.Ants)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations must be >= 0 (got %d)", ErrInvalid, c.Iterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0 (got %d)", ErrInvalid, c.Workers)
	}

	return nil
}

// Options maps c onto solver options.
func (c Config) Options() (tsp.Options, error) {
	algo, err := tsp.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return tsp.Options{}, fmt.Errorf("%w: algorithm %q: %w", ErrInvalid, c.Algorithm, err)
	}
	opts := tsp.DefaultOptions()
	opts.Algo = algo
	opts.Ants = c.Ants
	opts.Alpha = c.Alpha
	opts.Beta = c.Beta
	opts.Evaporation = c.Evaporation
	opts.Iterations = c.Iterations
	opts.ASRounds = c.ASRounds
	opts.GAGenerations = c.GAGenerations
	opts.CrossoverProb = c.CrossoverProb
	opts.MutationProb = c.MutationProb
	opts.Seed = c.Seed
	opts.Workers = c.Workers
	opts.RejectZeroDistance = c.RejectZeroDistance

	return opts, nil
}
