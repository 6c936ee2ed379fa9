package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("GET", "/bookings", "200", 0.05)
	RecordHTTPRequest("GET", "/bookings", "200", 0.07)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.01)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/bookings", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401")))
}

func TestRecordBooking(t *testing.T) {
	BookingsTotal.Reset()

	RecordBooking("PENDING")
	RecordBooking("CONFIRMED")
	RecordBooking("CONFIRMED")

	assert.Equal(t, float64(1), testutil.ToFloat64(BookingsTotal.WithLabelValues("PENDING")))
	assert.Equal(t, float64(2), testutil.ToFloat64(BookingsTotal.WithLabelValues("CONFIRMED")))
}

func TestRecordBookingConflict(t *testing.T) {
	BookingConflictsTotal.Reset()

	RecordBookingConflict("slot_taken")
	RecordBookingConflict("blocked")
	RecordBookingConflict("slot_taken")

	assert.Equal(t, float64(2), testutil.ToFloat64(BookingConflictsTotal.WithLabelValues("slot_taken")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BookingConflictsTotal.WithLabelValues("blocked")))
}

func TestRecordPaymentCharge(t *testing.T) {
	PaymentChargesTotal.Reset()

	RecordPaymentCharge("success", 0.15)
	RecordPaymentCharge("failure", 0.15)
	RecordPaymentCharge("success", 0.15)

	assert.Equal(t, float64(2), testutil.ToFloat64(PaymentChargesTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(PaymentChargesTotal.WithLabelValues("failure")))
}

func TestRecordBlackoutMutation(t *testing.T) {
	BlackoutSlotsTotal.Reset()

	RecordBlackoutMutation("create")
	RecordBlackoutMutation("delete")

	assert.Equal(t, float64(1), testutil.ToFloat64(BlackoutSlotsTotal.WithLabelValues("create")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BlackoutSlotsTotal.WithLabelValues("delete")))
}
