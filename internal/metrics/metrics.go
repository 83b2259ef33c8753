package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "servicehub",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and route.",
		},
		[]string{"method", "route", "status"},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "servicehub",
			Name:      "booking_transitions_total",
			Help:      "Booking status transitions by edge and outcome.",
		},
		[]string{"from", "to", "outcome"},
	)

	messagesSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "servicehub",
			Name:      "chat_messages_sent_total",
			Help:      "Chat messages accepted for delivery.",
		},
	)
)

// Register registers the collectors. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingTransitions, messagesSent)
	})
}

func IncHTTP(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}

// IncTransition records a booking transition attempt. outcome is
// "ok", "invalid" or "forbidden".
func IncTransition(from, to, outcome string) {
	bookingTransitions.WithLabelValues(from, to, outcome).Inc()
}

func IncMessageSent() {
	messagesSent.Inc()
}
