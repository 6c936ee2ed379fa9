package facility

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFacility(ctx context.Context, ownerID int, name, location string) (*Facility, error) {
	query := `
		INSERT INTO facilities (owner_id, name, location, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id, owner_id, name, location, status, created_at
	`

	var f Facility
	err := r.db.GetContext(ctx, &f, query, ownerID, name, location)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

func (r *repository) GetFacilityByID(ctx context.Context, id int) (*Facility, error) {
	query := `
		SELECT id, owner_id, name, location, status, created_at
		FROM facilities
		WHERE id = $1
	`

	var f Facility
	err := r.db.GetContext(ctx, &f, query, id)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

func (r *repository) ListFacilities(ctx context.Context, status string) ([]Facility, error) {
	query := `
		SELECT id, owner_id, name, location, status, created_at
		FROM facilities
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	var facilities []Facility
	err := r.db.SelectContext(ctx, &facilities, query, args...)
	if err != nil {
		return nil, err
	}

	return facilities, nil
}

func (r *repository) ListFacilitiesByOwner(ctx context.Context, ownerID int) ([]Facility, error) {
	query := `
		SELECT id, owner_id, name, location, status, created_at
		FROM facilities
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	var facilities []Facility
	err := r.db.SelectContext(ctx, &facilities, query, ownerID)
	if err != nil {
		return nil, err
	}

	return facilities, nil
}

func (r *repository) SetFacilityStatus(ctx context.Context, id int, status string) (*Facility, error) {
	query := `
		UPDATE facilities
		SET status = $1
		WHERE id = $2
		RETURNING id, owner_id, name, location, status, created_at
	`

	var f Facility
	err := r.db.GetContext(ctx, &f, query, status, id)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

func (r *repository) CreateCourt(ctx context.Context, facilityID int, name, sport string, hourlyRateCents int64) (*Court, error) {
	query := `
		INSERT INTO courts (facility_id, name, sport, hourly_rate_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id, facility_id, name, sport, hourly_rate_cents, is_active, created_at
	`

	var c Court
	err := r.db.GetContext(ctx, &c, query, facilityID, name, sport, hourlyRateCents)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetCourtByID(ctx context.Context, id int) (*Court, error) {
	query := `
		SELECT id, facility_id, name, sport, hourly_rate_cents, is_active, created_at
		FROM courts
		WHERE id = $1
	`

	var c Court
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) GetCourtWithFacility(ctx context.Context, id int) (*CourtWithFacility, error) {
	query := `
		SELECT
			c.id,
			c.facility_id,
			c.name,
			c.sport,
			c.hourly_rate_cents,
			c.is_active,
			c.created_at,
			f.status AS facility_status,
			f.owner_id AS facility_owner_id
		FROM courts c
		JOIN facilities f ON c.facility_id = f.id
		WHERE c.id = $1
	`

	var cwf CourtWithFacility
	err := r.db.GetContext(ctx, &cwf, query, id)
	if err != nil {
		return nil, err
	}

	return &cwf, nil
}

func (r *repository) ListCourtsByFacility(ctx context.Context, facilityID int) ([]Court, error) {
	query := `
		SELECT id, facility_id, name, sport, hourly_rate_cents, is_active, created_at
		FROM courts
		WHERE facility_id = $1
		ORDER BY name
	`

	var courts []Court
	err := r.db.SelectContext(ctx, &courts, query, facilityID)
	if err != nil {
		return nil, err
	}

	return courts, nil
}

func (r *repository) UpdateCourt(ctx context.Context, id int, name *string, hourlyRateCents *int64, isActive *bool) (*Court, error) {
	sets := []string{}
	args := []interface{}{}
	i := 1

	if name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", i))
		args = append(args, *name)
		i++
	}
	if hourlyRateCents != nil {
		sets = append(sets, fmt.Sprintf("hourly_rate_cents = $%d", i))
		args = append(args, *hourlyRateCents)
		i++
	}
	if isActive != nil {
		sets = append(sets, fmt.Sprintf("is_active = $%d", i))
		args = append(args, *isActive)
		i++
	}

	if len(sets) == 0 {
		return r.GetCourtByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE courts
		SET %s
		WHERE id = $%d
		RETURNING id, facility_id, name, sport, hourly_rate_cents, is_active, created_at
	`, strings.Join(sets, ", "), i)
	args = append(args, id)

	var c Court
	err := r.db.GetContext(ctx, &c, query, args...)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) DeactivateCourt(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE courts SET is_active = FALSE WHERE id = $1`, id)
	return err
}

func (r *repository) DeleteCourt(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM courts WHERE id = $1`, id)
	return err
}

func (r *repository) CourtHasFutureBookings(ctx context.Context, courtID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE court_id = $1
			  AND status NOT IN ('CANCELLED', 'FAILED')
			  AND end_datetime > NOW()
		)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, courtID)
	if err != nil {
		return false, err
	}

	return exists, nil
}
