package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtly_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courtly_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtly_bookings_total",
			Help: "Total number of bookings created",
		},
		[]string{"status"},
	)

	BookingConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtly_booking_conflicts_total",
			Help: "Booking requests rejected by the conflict checker",
		},
		[]string{"kind"},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courtly_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	PaymentChargesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtly_payment_charges_total",
			Help: "Payment gateway charge attempts",
		},
		[]string{"outcome"},
	)

	PaymentChargeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "courtly_payment_charge_duration_seconds",
			Help:    "Payment gateway charge duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	BlackoutSlotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtly_blackout_slots_total",
			Help: "Blackout window mutations",
		},
		[]string{"op"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courtly_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(status string) {
	BookingsTotal.WithLabelValues(status).Inc()
}

func RecordBookingConflict(kind string) {
	BookingConflictsTotal.WithLabelValues(kind).Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordPaymentCharge(outcome string, duration float64) {
	PaymentChargesTotal.WithLabelValues(outcome).Inc()
	PaymentChargeDuration.Observe(duration)
}

func RecordBlackoutMutation(op string) {
	BlackoutSlotsTotal.WithLabelValues(op).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
