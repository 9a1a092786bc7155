package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics Prometheus instrumentation for the monitor itself
type Metrics struct {
	Ticks            prometheus.Counter
	CollectErrors    prometheus.Counter
	CollectDuration  prometheus.Histogram
	HealthScore      prometheus.Gauge
	FailureRisk      prometheus.Gauge
	AlertsFired      *prometheus.CounterVec
	AlertsSuppressed prometheus.Counter
	WSClients        prometheus.Gauge
}

// New creates and registers the monitor metrics
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "healthmon",
			Name:      "ticks_total",
			Help:      "Completed monitor loop iterations.",
		}),
		CollectErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "healthmon",
			Name:      "collect_errors_total",
			Help:      "Sampling iterations that failed to produce a sample.",
		}),
		CollectDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "healthmon",
			Name:      "collect_duration_seconds",
			Help:      "Time spent collecting one metric sample.",
			Buckets:   prometheus.DefBuckets,
		}),
		HealthScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "healthmon",
			Name:      "health_score",
			Help:      "Current composite health score, 0 to 100.",
		}),
		FailureRisk: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "healthmon",
			Name:      "failure_risk",
			Help:      "Current failure risk estimate, 0 to 100.",
		}),
		AlertsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthmon",
			Name:      "alerts_fired_total",
			Help:      "Alerts fired, by metric and status.",
		}, []string{"metric", "status"}),
		AlertsSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "healthmon",
			Name:      "alerts_suppressed_total",
			Help:      "Alerts suppressed by cooldown.",
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "healthmon",
			Name:      "websocket_clients",
			Help:      "Connected WebSocket clients.",
		}),
	}

	reg.MustRegister(
		m.Ticks,
		m.CollectErrors,
		m.CollectDuration,
		m.HealthScore,
		m.FailureRisk,
		m.AlertsFired,
		m.AlertsSuppressed,
		m.WSClients,
	)
	return m
}

// ObserveCollect records a completed sample collection
func (m *Metrics) ObserveCollect(d time.Duration) {
	m.CollectDuration.Observe(d.Seconds())
}
