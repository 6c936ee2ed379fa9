package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var (
	ErrInvalidInterval  = errors.New("invalid booking interval")
	ErrCourtUnavailable = errors.New("court is not available for booking")
	ErrSlotTaken        = errors.New("requested interval overlaps an existing booking")
)

// BlockedError signals that the requested interval intersects an
// administrative blackout window.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	if e.Reason == "" {
		return "requested interval is blocked"
	}
	return fmt.Sprintf("requested interval is blocked: %s", e.Reason)
}

// Overlaps is the half-open intersection test used for every schedule check
// in the engine: [a1,a2) and [b1,b2) intersect iff a1 < b2 and b1 < a2.
// An interval ending exactly when another starts does not conflict.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// checkConflict runs the full conflict check on q, which must be the same
// transaction as any write that depends on the result. excludeBookingID
// skips one booking row, for interval updates; pass 0 for creation.
//
// Checks in order: court active + facility approved, blackout windows,
// existing non-terminal bookings.
func checkConflict(ctx context.Context, q sqlx.QueryerContext, courtID int, start, end time.Time, excludeBookingID int) error {
	var court struct {
		IsActive       bool   `db:"is_active"`
		FacilityStatus string `db:"facility_status"`
	}
	err := sqlx.GetContext(ctx, q, &court, `
		SELECT c.is_active, f.status AS facility_status
		FROM courts c
		JOIN facilities f ON c.facility_id = f.id
		WHERE c.id = $1
	`, courtID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCourtUnavailable
		}
		return err
	}
	if !court.IsActive || court.FacilityStatus != "approved" {
		return ErrCourtUnavailable
	}

	var reason sql.NullString
	err = sqlx.GetContext(ctx, q, &reason, `
		SELECT reason
		FROM availability_slots
		WHERE court_id = $1
		  AND blocked = TRUE
		  AND start_datetime < $3
		  AND end_datetime > $2
		LIMIT 1
	`, courtID, start, end)
	if err == nil {
		return &BlockedError{Reason: reason.String}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	var taken bool
	err = sqlx.GetContext(ctx, q, &taken, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE court_id = $1
			  AND status NOT IN ('CANCELLED', 'FAILED')
			  AND start_datetime < $3
			  AND end_datetime > $2
			  AND id <> $4
		)
	`, courtID, start, end, excludeBookingID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlotTaken
	}

	return nil
}
