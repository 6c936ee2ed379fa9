package booking

import (
	"context"
	"time"
)

type Repository interface {
	// CreateBooking conflict-checks and inserts in one transaction holding
	// the per-court schedule lock.
	CreateBooking(ctx context.Context, b *Booking) (*Booking, error)
	// CheckAvailability is a read-only conflict probe.
	CheckAvailability(ctx context.Context, courtID int, start, end time.Time) error
	GetBookingByID(ctx context.Context, id int) (*Booking, error)
	// UpdateStatus performs a status-guarded transition; ErrInvalidState when
	// the booking is no longer in the from status.
	UpdateStatus(ctx context.Context, id int, from, to Status, txnReference *string) error
	// UpdateInterval moves a PENDING booking to a new conflict-checked interval.
	UpdateInterval(ctx context.Context, id int, start, end time.Time, priceCents int64) (*Booking, error)
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
	GetBookingsByCourt(ctx context.Context, courtID int) ([]BookingWithDetails, error)
	GetBookingsByFacility(ctx context.Context, facilityID int) ([]BookingWithDetails, error)
	GetBookingStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error)
	GetBookingStatsByFacility(ctx context.Context, from, to time.Time) ([]FacilityStat, error)
}
