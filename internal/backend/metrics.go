package backend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "basecaller_backend_runs_total",
			Help: "Total number of RunModel calls by backend and outcome",
		},
		[]string{"backend", "outcome"},
	)
	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basecaller_backend_run_duration_seconds",
			Help:    "RunModel latency per read",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
	workersReady = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "basecaller_backend_workers_ready",
			Help: "Number of prepared workers by device",
		},
		[]string{"device"},
	)
)

func init() {
	prometheus.MustRegister(runsTotal, runDuration, workersReady)
}

func observeRun(kind Kind, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	runsTotal.WithLabelValues(string(kind), outcome).Inc()
	runDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
}
