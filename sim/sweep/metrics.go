package sweep

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inference-sim/ohq-sim/sim"
)

// Run outcome label values.
const (
	outcomeOK     = "ok"
	outcomeNoData = "no_data"
	outcomeError  = "error"
)

// Metrics are the Prometheus collectors of one sweep, registered to a
// private registry so concurrent sweeps never share state.
type Metrics struct {
	Registry *prometheus.Registry

	RunsTotal      *prometheus.CounterVec
	EventsTotal    prometheus.Counter
	StudentsServed prometheus.Counter
	Score          prometheus.Histogram
	WaitMinutes    prometheus.Histogram
}

// NewMetrics creates and registers the sweep collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ohq",
			Subsystem: "sweep",
			Name:      "runs_total",
			Help:      "Simulation runs by outcome (ok, no_data, error)",
		}, []string{"outcome"}),
		EventsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ohq",
			Subsystem: "sweep",
			Name:      "simulated_events_total",
			Help:      "Arrival and departure events applied across all runs",
		}),
		StudentsServed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ohq",
			Subsystem: "sweep",
			Name:      "students_served_total",
			Help:      "Projected weekly students served, summed over scored runs",
		}),
		Score: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ohq",
			Subsystem: "sweep",
			Name:      "score",
			Help:      "Composite strategy score of scored runs",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		}),
		WaitMinutes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ohq",
			Subsystem: "sweep",
			Name:      "average_wait_minutes",
			Help:      "Average waiting time of scored runs, in minutes",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
}

// observe records one run. Safe for concurrent use.
func (m *Metrics) observe(res sim.RunResult, steps int64, err error) {
	if m == nil {
		return
	}
	m.EventsTotal.Add(float64(steps))
	switch {
	case err == nil:
		m.RunsTotal.WithLabelValues(outcomeOK).Inc()
		m.StudentsServed.Add(float64(res.StudentsServed))
		m.Score.Observe(res.Score)
		m.WaitMinutes.Observe(res.AverageWaitTime)
	case errors.Is(err, sim.ErrNoData):
		m.RunsTotal.WithLabelValues(outcomeNoData).Inc()
	default:
		m.RunsTotal.WithLabelValues(outcomeError).Inc()
	}
}

// WriteToTextfile writes the registry in the Prometheus text format,
// suitable for the node exporter's textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
