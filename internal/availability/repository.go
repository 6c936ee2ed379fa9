package availability

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"courtly/internal/db"

	"github.com/jmoiron/sqlx"
)

var (
	ErrSlotNotFound    = errors.New("availability slot not found")
	ErrOverlappingSlot = errors.New("interval overlaps an existing availability slot")
)

const slotColumns = `id, court_id, start_datetime, end_datetime, blocked, reason, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

// slotOverlapExists uses the same half-open predicate as the booking conflict
// checker: adjacent slots sharing a boundary do not overlap.
func slotOverlapExists(ctx context.Context, q sqlx.QueryerContext, courtID int, start, end time.Time, excludeSlotID int) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, q, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM availability_slots
			WHERE court_id = $1
			  AND start_datetime < $3
			  AND end_datetime > $2
			  AND id <> $4
		)
	`, courtID, start, end, excludeSlotID)
	return exists, err
}

func (r *repository) CreateSlot(ctx context.Context, courtID int, start, end time.Time, blocked bool, reason *string) (*Slot, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := db.AcquireCourtScheduleLock(ctx, tx, courtID); err != nil {
		return nil, err
	}

	overlaps, err := slotOverlapExists(ctx, tx, courtID, start, end, 0)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrOverlappingSlot
	}

	query := `
		INSERT INTO availability_slots (court_id, start_datetime, end_datetime, blocked, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + slotColumns

	var slot Slot
	err = tx.GetContext(ctx, &slot, query, courtID, start, end, blocked, reason)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &slot, nil
}

func (r *repository) GetSlotByID(ctx context.Context, id int) (*Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM availability_slots WHERE id = $1`

	var slot Slot
	err := r.db.GetContext(ctx, &slot, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	return &slot, nil
}

func (r *repository) ListSlotsByCourt(ctx context.Context, courtID int) ([]Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM availability_slots
		WHERE court_id = $1
		ORDER BY start_datetime
	`

	var slots []Slot
	err := r.db.SelectContext(ctx, &slots, query, courtID)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) UpdateSlot(ctx context.Context, id int, start, end time.Time, blocked bool, reason *string) (*Slot, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current Slot
	err = tx.GetContext(ctx, &current, `SELECT `+slotColumns+` FROM availability_slots WHERE id = $1 FOR UPDATE`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}

	if err := db.AcquireCourtScheduleLock(ctx, tx, current.CourtID); err != nil {
		return nil, err
	}

	overlaps, err := slotOverlapExists(ctx, tx, current.CourtID, start, end, id)
	if err != nil {
		return nil, err
	}
	if overlaps {
		return nil, ErrOverlappingSlot
	}

	query := `
		UPDATE availability_slots
		SET start_datetime = $1, end_datetime = $2, blocked = $3, reason = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING ` + slotColumns

	var updated Slot
	err = tx.GetContext(ctx, &updated, query, start, end, blocked, reason, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) DeleteSlot(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM availability_slots WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}
