// Package metrics exposes Prometheus collectors for subscriptions, event
// delivery and node attachment.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	subscriptionsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "asyncui",
			Subsystem: "event",
			Name:      "subscriptions_active",
			Help:      "Live listener registrations",
		},
		[]string{"kind"},
	)

	eventsDelivered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asyncui",
			Subsystem: "bridge",
			Name:      "events_delivered_total",
			Help:      "Payloads accepted into a stream buffer",
		},
		[]string{"kind"},
	)

	eventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asyncui",
			Subsystem: "bridge",
			Name:      "events_dropped_total",
			Help:      "Payloads overwritten or discarded before being observed",
		},
		[]string{"kind"},
	)

	nodesAttached = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "asyncui",
			Subsystem: "render",
			Name:      "nodes_attached_total",
			Help:      "Nodes attached by render containers",
		},
	)

	nodesDetached = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "asyncui",
			Subsystem: "render",
			Name:      "nodes_detached_total",
			Help:      "Nodes detached by render containers",
		},
	)

	loopTasks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asyncui",
			Subsystem: "loop",
			Name:      "tasks_total",
			Help:      "Tasks run on the dispatch loop",
		},
		[]string{"result"},
	)

	registry = prometheus.NewRegistry()
)

func init() {
	registry.MustRegister(subscriptionsActive, eventsDelivered, eventsDropped, nodesAttached, nodesDetached, loopTasks)
}

// Registry returns the registry holding all asyncui collectors.
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the collectors in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// SubscriptionOpened records a new listener registration.
func SubscriptionOpened(kind string) {
	subscriptionsActive.WithLabelValues(kind).Inc()
}

// SubscriptionClosed records a listener removal.
func SubscriptionClosed(kind string) {
	subscriptionsActive.WithLabelValues(kind).Dec()
}

// EventDelivered records a payload entering a stream buffer.
func EventDelivered(kind string) {
	eventsDelivered.WithLabelValues(kind).Inc()
}

// EventDropped records a payload lost to coalescing or overflow.
func EventDropped(kind string) {
	eventsDropped.WithLabelValues(kind).Inc()
}

// NodeAttached records a container attaching its node.
func NodeAttached() {
	nodesAttached.Inc()
}

// NodeDetached records a container detaching its node.
func NodeDetached() {
	nodesDetached.Inc()
}

// LoopTask records one task run on the dispatch loop; result is "ok" or "panic".
func LoopTask(result string) {
	loopTasks.WithLabelValues(result).Inc()
}
