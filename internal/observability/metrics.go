// Package observability holds the Prometheus collectors shared by the server.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "boardsync"

var (
	// OperationsTotal counts ordering engine operations.
	// Labels: operation, outcome (ok, not_found, forbidden, conflict, invalid, error)
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ordering",
		Name:      "operations_total",
		Help:      "Total ordering engine operations by outcome",
	}, []string{"operation", "outcome"})

	// OperationDuration measures engine operation latency including the store transaction.
	OperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ordering",
		Name:      "operation_duration_seconds",
		Help:      "Ordering engine operation latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"operation"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RealtimeConnections is the number of open websocket connections on this instance.
	RealtimeConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "realtime",
		Name:      "connections",
		Help:      "Open websocket connections",
	})

	// RealtimeEventsTotal counts events handed to the hub for delivery.
	// Labels: event (wire name)
	RealtimeEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "realtime",
		Name:      "events_total",
		Help:      "Events broadcast to connection groups",
	}, []string{"event"})

	// RealtimeDroppedClients counts connections closed because their send buffer was full.
	RealtimeDroppedClients = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "realtime",
		Name:      "dropped_clients_total",
		Help:      "Connections dropped for falling behind",
	})

	// RelayMessagesTotal counts envelopes crossing the Redis relay.
	// Labels: direction (published, received, invalid)
	RelayMessagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "relay",
		Name:      "messages_total",
		Help:      "Envelopes published to or received from the relay channel",
	}, []string{"direction"})
)

// ObserveOperation records one engine operation.
func ObserveOperation(operation, outcome string, elapsed time.Duration) {
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
	OperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
