package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salon_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SlotFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_booked_slot_fetches_total",
			Help: "Booked-slot fetches against the salon API, by outcome",
		},
		[]string{"outcome"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_bookings_total",
			Help: "Booking submissions, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	StatusChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_status_changes_total",
			Help: "Requested appointment status changes",
		},
		[]string{"status", "outcome"},
	)

	AccessDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_access_decisions_total",
			Help: "Route access-control decisions",
		},
		[]string{"action"},
	)

	AuditQueueDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salon_audit_events_dropped_total",
			Help: "Audit events dropped because the queue was full",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSlotFetch(outcome string) {
	SlotFetchesTotal.WithLabelValues(outcome).Inc()
}

func RecordBooking(kind, outcome string) {
	BookingsTotal.WithLabelValues(kind, outcome).Inc()
}

func RecordStatusChange(status, outcome string) {
	StatusChangesTotal.WithLabelValues(status, outcome).Inc()
}

func RecordAccessDecision(action string) {
	AccessDecisionsTotal.WithLabelValues(action).Inc()
}
