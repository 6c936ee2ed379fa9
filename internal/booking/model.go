package booking

import "time"

type Booking struct {
	ID              int       `db:"id" json:"id"`
	UserID          int       `db:"user_id" json:"user_id"`
	CourtID         int       `db:"court_id" json:"court_id"`
	FacilityID      int       `db:"facility_id" json:"facility_id"`
	StartDatetime   time.Time `db:"start_datetime" json:"start_datetime"`
	EndDatetime     time.Time `db:"end_datetime" json:"end_datetime"`
	TotalPriceCents int64     `db:"total_price_cents" json:"total_price_cents"`
	Status          Status    `db:"status" json:"status"`
	TxnReference    *string   `db:"txn_reference" json:"txn_reference,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// EffectiveStatus derives COMPLETED at read time: a CONFIRMED booking whose
// interval has fully elapsed counts as completed without a background sweep.
func (b *Booking) EffectiveStatus(now time.Time) Status {
	if b.Status == StatusConfirmed && !now.Before(b.EndDatetime) {
		return StatusCompleted
	}
	return b.Status
}

type BookingWithDetails struct {
	Booking
	CourtName    string `db:"court_name" json:"court_name"`
	FacilityName string `db:"facility_name" json:"facility_name"`
	UserName     string `db:"user_name" json:"user_name"`
	UserEmail    string `db:"user_email" json:"user_email"`
}

type CreateBookingRequest struct {
	StartDatetime string `json:"start_datetime" binding:"required"`
	EndDatetime   string `json:"end_datetime" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=card wallet"`
}

type UpdateBookingRequest struct {
	StartDatetime string `json:"start_datetime" binding:"required"`
	EndDatetime   string `json:"end_datetime" binding:"required"`
}

type PayRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=card wallet"`
}

type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type DayStat struct {
	Day          time.Time `db:"day" json:"day"`
	Count        int       `db:"count" json:"count"`
	RevenueCents int64     `db:"revenue_cents" json:"revenue_cents"`
}

type FacilityStat struct {
	FacilityID   int    `db:"facility_id" json:"facility_id"`
	FacilityName string `db:"facility_name" json:"facility_name"`
	Count        int    `db:"count" json:"count"`
	RevenueCents int64  `db:"revenue_cents" json:"revenue_cents"`
}
