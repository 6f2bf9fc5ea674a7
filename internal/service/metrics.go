package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	paymentTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "payments",
			Name:      "transitions_total",
			Help:      "Total number of payment status transitions",
		},
		[]string{"status"},
	)

	couponApplications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "coupons",
			Name:      "applications_total",
			Help:      "Total number of coupon applications by result",
		},
		[]string{"result"},
	)

	eventsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "events",
			Name:      "emitted_total",
			Help:      "Total number of published domain events",
		},
		[]string{"type"},
	)

	sideChannelFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Subsystem: "events",
			Name:      "side_channel_failures_total",
			Help:      "Total number of failed event publications and archive writes",
		},
		[]string{"channel"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		paymentTransitions,
		couponApplications,
		eventsEmitted,
		sideChannelFailures,
	)
}
