// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Simulation metrics
	SimulationsTotal prometheus.Counter
	TrialsSimulated  prometheus.Counter
	TradesSimulated  prometheus.Counter
	RuinsObserved    prometheus.Counter

	// Latency metrics
	SimulationDuration prometheus.Histogram

	// Dashboard metrics
	ActiveStreams     prometheus.Gauge
	RequestErrors     *prometheus.CounterVec
	LastSimulationRun prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered
// on the default registry.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "monte_carlo"
	}

	return &Metrics{
		SimulationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulations_total",
			Help:      "Total simulation runs completed",
		}),
		TrialsSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_simulated_total",
			Help:      "Total trials generated across all runs",
		}),
		TradesSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trades_simulated_total",
			Help:      "Total trade outcomes generated across all runs",
		}),
		RuinsObserved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ruins_observed_total",
			Help:      "Total trials that reached the ruin threshold",
		}),
		SimulationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_duration_seconds",
			Help:      "Wall-clock duration of a full simulation run",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		ActiveStreams: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_streams",
			Help:      "Currently open live equity streams",
		}),
		RequestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_errors_total",
			Help:      "Dashboard request errors by kind",
		}, []string{"kind"}),
		LastSimulationRun: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_simulation_unix",
			Help:      "Unix timestamp of the last completed simulation",
		}),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
