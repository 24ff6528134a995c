package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	reloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finplan",
			Subsystem: "models",
			Name:      "reloads_total",
			Help:      "Model set reloads by result",
		},
		[]string{"result"},
	)

	loadSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "finplan",
			Subsystem: "models",
			Name:      "load_duration_seconds",
			Help:      "Time to load one model artifact",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"role"},
	)

	activeInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "finplan",
			Subsystem: "models",
			Name:      "active_roles",
			Help:      "Number of roles populated in the active set, labelled by set version",
		},
		[]string{"version"},
	)
)

func init() {
	prometheus.MustRegister(reloadsTotal, loadSeconds, activeInfo)
}
