package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	eventsConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "kafka_consumer",
			Name:      "events_consumed_total",
			Help:      "Total number of successfully handled events",
		},
		[]string{"type"},
	)

	eventsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "kafka_consumer",
			Name:      "events_failed_total",
			Help:      "Total number of failed event handling attempts",
		},
	)

	eventsDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "kafka_consumer",
			Name:      "events_dlq_total",
			Help:      "Total number of events written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	eventProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "marketplace",
			Subsystem: "kafka_consumer",
			Name:      "event_processing_duration_seconds",
			Help:      "Histogram of event processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	eventsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "marketplace",
			Subsystem: "kafka_consumer",
			Name:      "events_in_progress",
			Help:      "Number of events currently being processed",
		},
	)
)

var (
	callbackRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "http",
			Name:      "payment_callbacks_total",
			Help:      "Total number of payment gateway callbacks by result",
		},
		[]string{"result"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		eventsConsumed,
		eventsFailed,
		eventsDLQ,
		commitErrors,
		eventProcessingDuration,
		eventsInProgress,

		callbackRequests,
	)
}
