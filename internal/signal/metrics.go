package signal

import "github.com/prometheus/client_golang/prometheus"

var signalLoadsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "basecaller",
		Subsystem: "signal",
		Name:      "loads_total",
		Help:      "Read containers loaded, by outcome",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(signalLoadsTotal)
}
