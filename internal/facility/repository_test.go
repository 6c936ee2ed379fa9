package facility

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func TestCreateFacility(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO facilities (owner_id, name, location, status) VALUES ($1, $2, $3, 'pending') RETURNING id, owner_id, name, location, status, created_at")).
		WithArgs(7, "Riverside Club", "Amsterdam").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "location", "status", "created_at"}).
			AddRow(3, 7, "Riverside Club", "Amsterdam", "pending", time.Now()))

	f, err := repo.CreateFacility(context.Background(), 7, "Riverside Club", "Amsterdam")
	require.NoError(t, err)
	require.Equal(t, 3, f.ID)
	require.Equal(t, StatusPending, f.Status)
}

func TestListFacilitiesFilter(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, owner_id, name, location, status, created_at FROM facilities WHERE status = $1 ORDER BY created_at DESC")).
		WithArgs("approved").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "location", "status", "created_at"}).
			AddRow(3, 7, "Riverside Club", "Amsterdam", "approved", now))

	list, err := repo.ListFacilities(context.Background(), StatusApproved)
	require.NoError(t, err)
	require.Len(t, list, 1)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, owner_id, name, location, status, created_at FROM facilities ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "location", "status", "created_at"}).
			AddRow(3, 7, "Riverside Club", "Amsterdam", "approved", now).
			AddRow(4, 8, "Sunset Padel", "Utrecht", "pending", now))

	all, err := repo.ListFacilities(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestGetCourtWithFacility(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.id, c.facility_id, c.name, c.sport, c.hourly_rate_cents, c.is_active, c.created_at, f.status AS facility_status, f.owner_id AS facility_owner_id FROM courts c JOIN facilities f ON c.facility_id = f.id WHERE c.id = $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "facility_id", "name", "sport", "hourly_rate_cents", "is_active", "created_at",
			"facility_status", "facility_owner_id",
		}).AddRow(2, 3, "Court 1", "tennis", int64(50000), true, time.Now(), "approved", 7))

	cwf, err := repo.GetCourtWithFacility(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, 3, cwf.FacilityID)
	require.Equal(t, "approved", cwf.FacilityStatus)
	require.Equal(t, 7, cwf.FacilityOwnerID)
}

func TestUpdateCourtPartialSet(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	rate := int64(60000)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE courts SET hourly_rate_cents = $1 WHERE id = $2 RETURNING id, facility_id, name, sport, hourly_rate_cents, is_active, created_at")).
		WithArgs(rate, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "facility_id", "name", "sport", "hourly_rate_cents", "is_active", "created_at"}).
			AddRow(2, 3, "Court 1", "tennis", rate, true, time.Now()))

	c, err := repo.UpdateCourt(context.Background(), 2, nil, &rate, nil)
	require.NoError(t, err)
	require.Equal(t, rate, c.HourlyRateCents)
}

func TestCourtHasFutureBookings(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS( SELECT 1 FROM bookings WHERE court_id = $1 AND status NOT IN ('CANCELLED', 'FAILED') AND end_datetime > NOW() )")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	has, err := repo.CourtHasFutureBookings(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, has)
}
