package training

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finplan",
			Subsystem: "training",
			Name:      "runs_total",
			Help:      "Training runs by result",
		},
		[]string{"result"},
	)

	runDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "finplan",
			Subsystem: "training",
			Name:      "duration_seconds",
			Help:      "Wall time of training runs",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)
)

func init() {
	prometheus.MustRegister(runsTotal, runDuration)
}

func observeRun(err error, elapsed time.Duration) {
	result := "ok"
	switch {
	case err == nil:
	case IsBusy(err):
		result = "busy"
	case IsTrainingData(err):
		result = "data_error"
	case IsReloadAfterTrain(err):
		result = "reload_failed"
	default:
		result = "failed"
	}
	runsTotal.WithLabelValues(result).Inc()
	if result != "busy" {
		runDuration.Observe(elapsed.Seconds())
	}
}
