package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SagaMetrics counts checkout saga outcomes. A nil *SagaMetrics is valid and
// records nothing, which keeps unit tests quiet.
type SagaMetrics struct {
	checkoutsOpened         prometheus.Counter
	ordersAuthorized        prometheus.Counter
	ordersCaptured          prometheus.Counter
	ordersCancelled         prometheus.Counter
	criticalInconsistencies prometheus.Counter
	registry                *prometheus.Registry
}

func NewSagaMetrics() *SagaMetrics {
	registry := prometheus.NewRegistry()
	m := &SagaMetrics{
		checkoutsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_opened_total",
			Help: "Checkout attempts that passed validation and opened a payment order.",
		}),
		ordersAuthorized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_authorized_total",
			Help: "Orders that reached AUTHORIZED.",
		}),
		ordersCaptured: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_captured_total",
			Help: "Orders that reached CAPTURED.",
		}),
		ordersCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_cancelled_total",
			Help: "Orders cancelled, by compensation or by the customer.",
		}),
		criticalInconsistencies: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checkout_critical_inconsistency_total",
			Help: "Captured payments whose commerce order could not be marked paid. Requires manual repair.",
		}),
		registry: registry,
	}
	registry.MustRegister(
		m.checkoutsOpened,
		m.ordersAuthorized,
		m.ordersCaptured,
		m.ordersCancelled,
		m.criticalInconsistencies,
	)
	return m
}

func (m *SagaMetrics) RecordOpened() {
	if m != nil {
		m.checkoutsOpened.Inc()
	}
}

func (m *SagaMetrics) RecordAuthorized() {
	if m != nil {
		m.ordersAuthorized.Inc()
	}
}

func (m *SagaMetrics) RecordCaptured() {
	if m != nil {
		m.ordersCaptured.Inc()
	}
}

func (m *SagaMetrics) RecordCancelled() {
	if m != nil {
		m.ordersCancelled.Inc()
	}
}

func (m *SagaMetrics) RecordCriticalInconsistency() {
	if m != nil {
		m.criticalInconsistencies.Inc()
	}
}

// Handler exposes the registry for the /metrics route.
func (m *SagaMetrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
