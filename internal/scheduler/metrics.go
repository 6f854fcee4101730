package scheduler

import "github.com/prometheus/client_golang/prometheus"

var (
	decodeRoundsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boolevald",
			Subsystem: "scheduler",
			Name:      "decode_rounds_total",
			Help:      "Shared decode rounds by outcome",
		},
		[]string{"status"},
	)

	evictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "boolevald",
			Subsystem: "scheduler",
			Name:      "evictions_total",
			Help:      "Sessions evicted and requeued due to resource exhaustion",
		},
	)

	tasksResolvedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "boolevald",
			Subsystem: "scheduler",
			Name:      "tasks_resolved_total",
			Help:      "Resolved tasks by confusion outcome",
		},
		[]string{"outcome"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "boolevald",
			Subsystem: "scheduler",
			Name:      "active_sessions",
			Help:      "Sessions currently running on the shared context",
		},
	)

	queueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "boolevald",
			Subsystem: "scheduler",
			Name:      "queue_depth",
			Help:      "Tasks waiting in the queue",
		},
	)

	currentCapacity = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "boolevald",
			Subsystem: "scheduler",
			Name:      "current_capacity",
			Help:      "Effective session capacity after exhaustion shrinks",
		},
	)
)

func init() {
	prometheus.MustRegister(
		decodeRoundsTotal,
		evictionsTotal,
		tasksResolvedTotal,
		activeSessions,
		queueDepth,
		currentCapacity,
	)
}

func outcomeLabel(expected, predicted bool) string {
	switch {
	case expected && predicted:
		return "tp"
	case expected && !predicted:
		return "fn"
	case !expected && predicted:
		return "fp"
	default:
		return "tn"
	}
}
