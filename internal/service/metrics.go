package service

import "github.com/prometheus/client_golang/prometheus"

var publishFailures = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: "order_pipeline",
		Subsystem: "publisher",
		Name:      "publish_failures_total",
		Help:      "Total number of OrderCreated events that failed to reach the broker",
	},
)

func RegisterMetrics() {
	prometheus.MustRegister(publishFailures)
}
