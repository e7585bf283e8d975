// Package metrics exports solver progress as Prometheus metrics.
//
// Observer implements tsp.Observer; plug it into tsp.Options.Observer and
// serve Handler(reg) to expose the run on /metrics.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/antga/tsp"
)

const namespace = "antga"

// NewRegistry returns a dedicated registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return reg
}

// Handler serves reg in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// Observer records every tsp.Observation. Safe for concurrent scrapes.
type Observer struct {
	best         prometheus.Gauge
	roundBest    *prometheus.GaugeVec
	steps        *prometheus.CounterVec
	improvements prometheus.Counter
	outer        prometheus.Gauge
	gaMean       prometheus.Gauge
	gaStdDev     prometheus.Gauge
	stepSeconds  *prometheus.HistogramVec

	mu       sync.Mutex
	seen     bool
	lastBest float64
	lastAt   time.Time
	now      func() time.Time
}

var _ tsp.Observer = (*Observer)(nil)

// New creates an Observer and registers its collectors on reg. runID is
// attached to every series as the "run" label.
func New(reg prometheus.Registerer, runID string) (*Observer, error) {
	labels := prometheus.Labels{"run": runID}
	o := &Observer{
		best: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "best_tour_length",
			Help: "Shortest tour length found so far.", ConstLabels: labels,
		}),
		roundBest: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "step_best_tour_length",
			Help: "Best tour length of the latest step, by phase.", ConstLabels: labels,
		}, []string{"phase"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "steps_total",
			Help: "Completed Ant System rounds, GA generations and hybrid iterations.", ConstLabels: labels,
		}, []string{"phase"}),
		improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "improvements_total",
			Help: "Number of steps that lowered the best tour length.", ConstLabels: labels,
		}),
		outer: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "outer_iteration",
			Help: "Current 1-based outer iteration.", ConstLabels: labels,
		}),
		gaMean: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "ga_fitness_mean",
			Help: "Mean tour length of the latest GA generation.", ConstLabels: labels,
		}),
		gaStdDev: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "ga_fitness_stddev",
			Help: "Standard deviation of tour lengths in the latest GA generation.", ConstLabels: labels,
		}),
		stepSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "step_duration_seconds",
			Help:    "Wall time between consecutive observations, by phase.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10), ConstLabels: labels,
		}, []string{"phase"}),
		now: time.Now,
	}
	for _, c := range []prometheus.Collector{
		o.best, o.roundBest, o.steps, o.improvements, o.outer, o.gaMean, o.gaStdDev, o.stepSeconds,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	o.Reset()

	return o, nil
}

// Reset starts a new timing window and forgets the previous best.
func (o *Observer) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.seen = false
	o.lastBest = 0
	o.lastAt = o.now()
}

// Observe implements tsp.Observer.
func (o *Observer) Observe(obs tsp.Observation) {
	phase := obs.Phase.String()

	o.mu.Lock()
	now := o.now()
	elapsed := now.Sub(o.lastAt).Seconds()
	o.lastAt = now
	improved := !o.seen || obs.Best < o.lastBest
	o.seen = true
	o.lastBest = obs.Best
	o.mu.Unlock()

	o.stepSeconds.WithLabelValues(phase).Observe(elapsed)
	o.steps.WithLabelValues(phase).Inc()
	o.roundBest.WithLabelValues(phase).Set(obs.RoundBest)
	o.best.Set(obs.Best)
	o.outer.Set(float64(obs.Outer))
	if improved {
		o.improvements.Inc()
	}
	if obs.Phase == tsp.PhaseGenetic {
		o.gaMean.Set(obs.Mean)
		o.gaStdDev.Set(obs.StdDev)
	}
}
