// Package metrics exposes Prometheus counters for order lifecycle
// observability. RegisterMetrics must be called once at startup before the
// metrics endpoint is served.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ordering",
			Subsystem: "orders",
			Name:      "created_total",
			Help:      "Total number of orders created",
		},
	)

	OrderTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ordering",
			Subsystem: "orders",
			Name:      "transitions_total",
			Help:      "Total number of committed order status transitions",
		},
		[]string{"event"},
	)

	ConcurrencyConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ordering",
			Subsystem: "orders",
			Name:      "concurrency_conflicts_total",
			Help:      "Total number of lost conditional status updates",
		},
	)

	OrdersExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "ordering",
			Subsystem: "sweeper",
			Name:      "orders_expired_total",
			Help:      "Total number of pending orders expired by the sweeper",
		},
	)

	NotificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ordering",
			Subsystem: "notifications",
			Name:      "failures_total",
			Help:      "Total number of failed collaborator notification calls",
		},
		[]string{"collaborator"},
	)
)

// RegisterMetrics registers all collectors with the default registry.
func RegisterMetrics() {
	prometheus.MustRegister(
		OrdersCreated,
		OrderTransitions,
		ConcurrencyConflicts,
		OrdersExpired,
		NotificationFailures,
	)
}
