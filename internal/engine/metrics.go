package engine

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/sma-timetable-engine/internal/models"
)

// Metrics encapsulates Prometheus instrumentation for scheduling runs. A nil
// *Metrics is a valid no-op, so embedding the engine in a service without an
// exporter costs nothing.
type Metrics struct {
	registry           *prometheus.Registry
	handler            http.Handler
	runsTotal          *prometheus.CounterVec
	runDuration        *prometheus.HistogramVec
	fitness            prometheus.Histogram
	unassignedSessions prometheus.Counter
}

// NewMetrics registers the scheduling collectors on a private registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_runs_total",
		Help: "Total scheduling runs by strategy and outcome",
	}, []string{"strategy", "outcome"})

	runDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_run_duration_seconds",
		Help:    "Duration of scheduling runs in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})

	fitness := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_fitness",
		Help:    "Fitness score of finished runs",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})

	unassignedSessions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_unassigned_sessions_total",
		Help: "Total sessions left unassigned across runs",
	})

	registry.MustRegister(runsTotal, runDuration, fitness, unassignedSessions)

	return &Metrics{
		registry:           registry,
		handler:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		runsTotal:          runsTotal,
		runDuration:        runDuration,
		fitness:            fitness,
		unassignedSessions: unassignedSessions,
	}
}

// Handler exposes the Prometheus scrape handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveRun records one finished run.
func (m *Metrics) ObserveRun(result *models.ScheduleResult) {
	if m == nil || result == nil {
		return
	}
	outcome := "full"
	if result.UnassignedSessions > 0 {
		outcome = "partial"
	}
	m.runsTotal.WithLabelValues(result.Strategy, outcome).Inc()
	m.runDuration.WithLabelValues(result.Strategy).Observe(result.Elapsed.Seconds())
	m.fitness.Observe(result.Fitness)
	m.unassignedSessions.Add(float64(result.UnassignedSessions))
}
