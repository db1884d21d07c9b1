package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_pipeline",
			Subsystem: "kafka_consumer",
			Name:      "orders_processed_total",
			Help:      "Total number of OrderCreated events driven to Completed",
		},
	)

	ordersFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_pipeline",
			Subsystem: "kafka_consumer",
			Name:      "orders_failed_total",
			Help:      "Total number of failed order processing attempts",
		},
	)

	ordersDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "order_pipeline",
			Subsystem: "kafka_consumer",
			Name:      "messages_dropped_total",
			Help:      "Total number of messages acknowledged without processing",
		},
		[]string{"reason"},
	)

	ordersRequeued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_pipeline",
			Subsystem: "kafka_consumer",
			Name:      "orders_requeued_total",
			Help:      "Total number of messages re-enqueued for another delivery",
		},
	)

	ordersDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_pipeline",
			Subsystem: "kafka_consumer",
			Name:      "orders_dlq_total",
			Help:      "Total number of orders written to DLQ",
		},
	)

	writeErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_pipeline",
			Subsystem: "kafka_consumer",
			Name:      "write_errors_total",
			Help:      "Total number of failed requeue or DLQ writes",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_pipeline",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	orderProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "order_pipeline",
			Subsystem: "kafka_consumer",
			Name:      "order_processing_duration_seconds",
			Help:      "Histogram of order processing durations in seconds",
			Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	ordersInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "order_pipeline",
			Subsystem: "kafka_consumer",
			Name:      "orders_in_progress",
			Help:      "Number of orders currently being processed",
		},
	)
)

var (
	orderRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "order_pipeline",
			Subsystem: "http",
			Name:      "order_requests_total",
			Help:      "Total number of requests to get order by ID",
		},
		[]string{"status"},
	)

	orderRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "order_pipeline",
			Subsystem: "http",
			Name:      "order_request_duration_seconds",
			Help:      "Histogram of request durations for get order by ID",
			Buckets:   prometheus.DefBuckets,
		},
	)

	orderRequestsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "order_pipeline",
			Subsystem: "http",
			Name:      "order_requests_in_progress",
			Help:      "Number of in-progress requests to get order by ID",
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		ordersProcessed,
		ordersFailed,
		ordersDropped,
		ordersRequeued,
		ordersDLQ,
		writeErrors,
		commitErrors,
		orderProcessingDuration,
		ordersInProgress,

		orderRequestTotal,
		orderRequestDuration,
		orderRequestsInProgress,
	)
}
