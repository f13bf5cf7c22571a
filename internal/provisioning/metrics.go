package provisioning

import "github.com/prometheus/client_golang/prometheus"

var (
	// Step metrics
	stepTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onboarder",
			Subsystem: "provisioning",
			Name:      "steps_total",
			Help:      "Total number of executed workflow steps by result",
		},
		[]string{"step", "result"},
	)

	stepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "onboarder",
			Subsystem: "provisioning",
			Name:      "step_duration_seconds",
			Help:      "Duration of workflow steps in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms to ~100s
		},
		[]string{"step"},
	)

	// Run metrics
	runTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onboarder",
			Subsystem: "provisioning",
			Name:      "runs_total",
			Help:      "Total number of onboarding runs by terminal status",
		},
		[]string{"status"},
	)

	rollbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "onboarder",
			Subsystem: "provisioning",
			Name:      "rollbacks_total",
			Help:      "Total number of compensating deletions by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(stepTotal, stepDuration, runTotal, rollbackTotal)
}
