// Package metrics exposes stopwatch activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lapwatch"

// Collector records engine activity.
//
// A nil *Collector is valid and records nothing, so the engine can call it
// unconditionally.
type Collector struct {
	registry *prometheus.Registry

	actions *prometheus.CounterVec
	ticks   prometheus.Counter
	laps    prometheus.Counter
	split   prometheus.Histogram
	elapsed prometheus.Gauge
	running prometheus.Gauge
}

// New creates a collector registered on its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "User actions processed, by action and whether they changed state.",
		}, []string{"action", "applied"}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Ticks applied to a running stopwatch.",
		}),
		laps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "laps_total",
			Help:      "Laps recorded.",
		}),
		split: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lap_split_seconds",
			Help:      "Distribution of lap split durations.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}),
		elapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "elapsed_milliseconds",
			Help:      "Current elapsed time.",
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "running",
			Help:      "1 while the stopwatch is running, 0 otherwise.",
		}),
	}

	c.registry.MustRegister(c.actions, c.ticks, c.laps, c.split, c.elapsed, c.running)
	return c
}

// Registry returns the registry the collector's metrics live in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveAction counts one processed action.
func (c *Collector) ObserveAction(action string, applied bool) {
	if c == nil {
		return
	}
	label := "false"
	if applied {
		label = "true"
	}
	c.actions.WithLabelValues(action, label).Inc()
}

// ObserveTick counts one applied tick.
func (c *Collector) ObserveTick() {
	if c == nil {
		return
	}
	c.ticks.Inc()
}

// ObserveLap counts one recorded lap with its split in milliseconds.
func (c *Collector) ObserveLap(splitMS int64) {
	if c == nil {
		return
	}
	c.laps.Inc()
	c.split.Observe(float64(splitMS) / 1000)
}

// SetState updates the elapsed and running gauges.
func (c *Collector) SetState(elapsedMS int64, running bool) {
	if c == nil {
		return
	}
	c.elapsed.Set(float64(elapsedMS))
	if running {
		c.running.Set(1)
	} else {
		c.running.Set(0)
	}
}

// NewRouter serves the collector's registry on GET /metrics.
func NewRouter(c *Collector) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	return r
}
