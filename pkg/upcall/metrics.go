package upcall

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/marmos91/upcalld/pkg/status"
)

// ============================================================================
// Prometheus Metrics for Upcall Dispatch
// ============================================================================

// Label constants for metrics.
const (
	LabelOp     = "op"
	LabelErrno  = "errno"
	LabelStatus = "status"
)

// Status constants for the completed counter.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics provides Prometheus metrics for upcall submission and execution.
type Metrics struct {
	submittedTotal *prometheus.CounterVec
	rejectedTotal  *prometheus.CounterVec
	completedTotal *prometheus.CounterVec
	execDuration   *prometheus.HistogramVec
}

// NewMetrics creates and registers upcall metrics.
// If registry is nil, metrics are created but not registered (useful for
// testing).
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		submittedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "upcalld",
				Subsystem: "upcall",
				Name:      "submitted_total",
				Help:      "Total number of upcall submission attempts",
			},
			[]string{LabelOp},
		),

		rejectedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "upcalld",
				Subsystem: "upcall",
				Name:      "rejected_total",
				Help:      "Total number of upcall submissions rejected by the pool",
			},
			[]string{LabelOp, LabelErrno},
		),

		completedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "upcalld",
				Subsystem: "upcall",
				Name:      "completed_total",
				Help:      "Total number of upcall operations executed by workers",
			},
			[]string{LabelOp, LabelStatus},
		),

		execDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "upcalld",
				Subsystem: "upcall",
				Name:      "execution_duration_seconds",
				Help:      "Duration of upcall operation execution on worker goroutines",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{LabelOp},
		),
	}

	if registry != nil {
		registry.MustRegister(
			m.submittedTotal,
			m.rejectedTotal,
			m.completedTotal,
			m.execDuration,
		)
	}

	return m
}

// activeMetrics is set once during startup via SetMetrics; nil means
// metrics are disabled and observation is a no-op.
var activeMetrics *Metrics

// SetMetrics installs the metrics instance used by the package-level entry
// points. Call once at startup, before any Async* call.
func SetMetrics(m *Metrics) {
	activeMetrics = m
}

func observeSubmitted(op string) {
	if activeMetrics == nil {
		return
	}
	activeMetrics.submittedTotal.WithLabelValues(op).Inc()
}

func observeRejected(op string, rc status.Errno) {
	if activeMetrics == nil {
		return
	}
	activeMetrics.rejectedTotal.WithLabelValues(op, rc.String()).Inc()
}

func observeCompleted(op string, ok bool, d time.Duration) {
	if activeMetrics == nil {
		return
	}
	st := StatusError
	if ok {
		st = StatusOK
	}
	activeMetrics.completedTotal.WithLabelValues(op, st).Inc()
	activeMetrics.execDuration.WithLabelValues(op).Observe(d.Seconds())
}
