package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"courtly/internal/db"

	"github.com/jmoiron/sqlx"
)

var ErrBookingNotFound = errors.New("booking not found")

const bookingColumns = `id, user_id, court_id, facility_id, start_datetime, end_datetime, total_price_cents, status, txn_reference, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) CreateBooking(ctx context.Context, b *Booking) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := db.AcquireCourtScheduleLock(ctx, tx, b.CourtID); err != nil {
		return nil, err
	}

	if err := checkConflict(ctx, tx, b.CourtID, b.StartDatetime, b.EndDatetime, 0); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO bookings (user_id, court_id, facility_id, start_datetime, end_datetime, total_price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'PENDING')
		RETURNING ` + bookingColumns

	var created Booking
	err = tx.GetContext(ctx, &created, query,
		b.UserID, b.CourtID, b.FacilityID, b.StartDatetime, b.EndDatetime, b.TotalPriceCents)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) CheckAvailability(ctx context.Context, courtID int, start, end time.Time) error {
	return checkConflict(ctx, r.db, courtID, start, end, 0)
}

func (r *repository) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, from, to Status, txnReference *string) error {
	query := `
		UPDATE bookings
		SET status = $1, txn_reference = COALESCE($2, txn_reference), updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	result, err := r.db.ExecContext(ctx, query, to, txnReference, id, from)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	// Zero rows means a concurrent transition won the race.
	if rowsAffected == 0 {
		return ErrInvalidState
	}

	return nil
}

func (r *repository) UpdateInterval(ctx context.Context, id int, start, end time.Time, priceCents int64) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current Booking
	err = tx.GetContext(ctx, &current, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if current.Status != StatusPending {
		return nil, ErrInvalidState
	}

	if err := db.AcquireCourtScheduleLock(ctx, tx, current.CourtID); err != nil {
		return nil, err
	}

	if err := checkConflict(ctx, tx, current.CourtID, start, end, id); err != nil {
		return nil, err
	}

	query := `
		UPDATE bookings
		SET start_datetime = $1, end_datetime = $2, total_price_cents = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + bookingColumns

	var updated Booking
	err = tx.GetContext(ctx, &updated, query, start, end, priceCents, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY start_datetime DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

const detailedBookingQuery = `
	SELECT
		b.id,
		b.user_id,
		b.court_id,
		b.facility_id,
		b.start_datetime,
		b.end_datetime,
		b.total_price_cents,
		b.status,
		b.txn_reference,
		b.created_at,
		b.updated_at,
		c.name AS court_name,
		f.name AS facility_name,
		u.name AS user_name,
		u.email AS user_email
	FROM bookings b
	JOIN courts c ON b.court_id = c.id
	JOIN facilities f ON b.facility_id = f.id
	JOIN users u ON b.user_id = u.id
`

func (r *repository) GetBookingsByCourt(ctx context.Context, courtID int) ([]BookingWithDetails, error) {
	query := detailedBookingQuery + `
	WHERE b.court_id = $1
	ORDER BY b.start_datetime DESC`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, courtID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetBookingsByFacility(ctx context.Context, facilityID int) ([]BookingWithDetails, error) {
	query := detailedBookingQuery + `
	WHERE b.facility_id = $1
	ORDER BY b.start_datetime DESC`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, facilityID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetBookingStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	query := `
		SELECT
			DATE_TRUNC('day', start_datetime) AS day,
			COUNT(*) AS count,
			COALESCE(SUM(total_price_cents) FILTER (WHERE status IN ('CONFIRMED', 'COMPLETED')), 0) AS revenue_cents
		FROM bookings
		WHERE start_datetime >= $1 AND start_datetime < $2
		GROUP BY day
		ORDER BY day
	`

	var stats []DayStat
	err := r.db.SelectContext(ctx, &stats, query, from, to)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *repository) GetBookingStatsByFacility(ctx context.Context, from, to time.Time) ([]FacilityStat, error) {
	query := `
		SELECT
			b.facility_id,
			f.name AS facility_name,
			COUNT(*) AS count,
			COALESCE(SUM(b.total_price_cents) FILTER (WHERE b.status IN ('CONFIRMED', 'COMPLETED')), 0) AS revenue_cents
		FROM bookings b
		JOIN facilities f ON b.facility_id = f.id
		WHERE b.start_datetime >= $1 AND b.start_datetime < $2
		GROUP BY b.facility_id, f.name
		ORDER BY revenue_cents DESC
	`

	var stats []FacilityStat
	err := r.db.SelectContext(ctx, &stats, query, from, to)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
