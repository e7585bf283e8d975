// Command antga solves a TSPLIB instance with Ant System or the Ant
// System / genetic-algorithm hybrid.
//
// Usage:
//
//	antga -file cities.tsp [-algo antSystem|gaHybrid] [-config antga.yaml]
//	      [-env .env] [-iterations N] [-seed S] [-workers W]
//	      [-metrics-addr :9100] [-xlsx run.xlsx] [-quiet]
//
// Settings are resolved as defaults, then the YAML file, then ANTGA_*
// variables (the process environment, then the -env file), then flags.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/katalvlaran/antga/config"
	"github.com/katalvlaran/antga/metrics"
	"github.com/katalvlaran/antga/report"
	"github.com/katalvlaran/antga/tsp"
	"github.com/katalvlaran/antga/tsplib"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, log.Default()); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("antga: %v", err)
	}
}

// cliFlags holds the raw flag values before they are merged into a Config.
type cliFlags struct {
	configPath  string
	envPath     string
	algo        string
	file        string
	iterations  int
	seed        int64
	workers     int
	metricsAddr string
	xlsx        string
	quiet       bool
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, map[string]bool, error) {
	var f cliFlags
	fs := flag.NewFlagSet("antga", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&f.envPath, "env", "", ".env file of ANTGA_* defaults; set variables take precedence")
	fs.StringVar(&f.algo, "algo", "", "algorithm: antSystem or gaHybrid")
	fs.StringVar(&f.file, "file", "", "TSPLIB instance (EUC_2D coordinates or EXPLICIT FULL_MATRIX)")
	fs.IntVar(&f.iterations, "iterations", 0, "AS rounds (antSystem) or outer iterations (gaHybrid)")
	fs.Int64Var(&f.seed, "seed", 0, "random seed; 0 selects the fixed default")
	fs.IntVar(&f.workers, "workers", 0, "concurrent ant construction; 0 or 1 is sequential")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address during the run")
	fs.StringVar(&f.xlsx, "xlsx", "", "write the run summary, best tour and history to this .xlsx file")
	fs.BoolVar(&f.quiet, "quiet", false, "suppress per-step progress and the history table")
	if err := fs.Parse(args); err != nil {
		return f, nil, err
	}
	if fs.NArg() > 0 {
		return f, nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	return f, set, nil
}

// resolveConfig merges file, environment and explicitly set flags.
func resolveConfig(f cliFlags, set map[string]bool) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	lookup := config.LookupFunc(os.LookupEnv)
	if f.envPath != "" {
		file, err := config.ReadEnvFile(f.envPath)
		if err != nil {
			return cfg, err
		}
		lookup = config.Layered(os.LookupEnv, config.MapLookup(file))
	}
	if err = cfg.ApplyEnv(lookup); err != nil {
		return cfg, err
	}

	if set["algo"] {
		cfg.Algorithm = f.algo
	}
	if set["file"] {
		cfg.File = f.file
	}
	if set["iterations"] {
		cfg.Iterations = f.iterations
	}
	if set["seed"] {
		cfg.Seed = f.seed
	}
	if set["workers"] {
		cfg.Workers = f.workers
	}
	if set["metrics-addr"] {
		cfg.MetricsAddr = f.metricsAddr
	}

	return cfg, cfg.Validate()
}

func run(args []string, stdout io.Writer, logger *log.Logger) error {
	f, set, err := parseFlags(args, logger.Writer())
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(f, set)
	if err != nil {
		return err
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	in, err := tsplib.ReadFile(cfg.File)
	if err != nil {
		return err
	}
	dist, err := in.Distances()
	if err != nil {
		return err
	}

	runID := report.NewRunID()
	logger.Printf("run=%s instance=%s cities=%d algo=%s seed=%d", runID, in.Name, in.Len(), opts.Algo, opts.Seed)

	reg := metrics.NewRegistry()
	mobs, err := metrics.New(reg, runID)
	if err != nil {
		return err
	}
	observers := []tsp.Observer{mobs}
	if !f.quiet {
		observers = append(observers, progressLogger(logger, runID))
	}
	opts.Observer = fanOut(observers)
	opts.DiscardHistory = f.quiet && f.xlsx == ""

	if cfg.MetricsAddr != "" {
		stop, err := serveMetrics(cfg.MetricsAddr, metrics.Handler(reg), logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	start := time.Now()
	res, err := tsp.SolveWithMatrix(dist, opts)
	if err != nil {
		return err
	}
	rep := report.Run{
		ID:       runID,
		Instance: in.Name,
		Cities:   in.Len(),
		Options:  opts,
		Result:   res,
		Elapsed:  time.Since(start),
	}

	if !f.quiet && len(res.History) > 0 {
		if err = report.WriteHistory(stdout, res.History); err != nil {
			return err
		}
	}
	if err = report.WriteSummary(stdout, rep); err != nil {
		return err
	}
	if f.xlsx != "" {
		if err = report.SaveWorkbook(f.xlsx, rep); err != nil {
			return err
		}
		logger.Printf("run=%s workbook=%s", runID, f.xlsx)
	}
	fmt.Fprintf(stdout, "Best Tour Length: %s\nBest Iteration: %d\n", report.FormatLength(res.BestLength), res.BestIteration)

	return nil
}

// progressLogger prints one line per observation.
func progressLogger(logger *log.Logger, runID string) tsp.ObserverFunc {
	return func(o tsp.Observation) {
		if o.Phase == tsp.PhaseGenetic {
			logger.Printf("run=%s outer=%d %s step=%d best=%.6f step_best=%.6f mean=%.6f std=%.6f",
				runID, o.Outer, o.Phase, o.Step, o.Best, o.RoundBest, o.Mean, o.StdDev)
			return
		}
		logger.Printf("run=%s outer=%d %s step=%d best=%.6f step_best=%.6f",
			runID, o.Outer, o.Phase, o.Step, o.Best, o.RoundBest)
	}
}

type fanOut []tsp.Observer

func (f fanOut) Observe(o tsp.Observation) {
	for _, obs := range f {
		obs.Observe(o)
	}
}

// serveMetrics exposes h on /metrics until the returned stop func is called.
func serveMetrics(addr string, h http.Handler, logger *log.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listen %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("metrics server: %v", err)
		}
	}()
	logger.Printf("metrics on http://%s/metrics", ln.Addr())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Printf("metrics shutdown: %v", err)
		}
	}, nil
}
