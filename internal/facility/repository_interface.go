package facility

import "context"

type Repository interface {
	CreateFacility(ctx context.Context, ownerID int, name, location string) (*Facility, error)
	GetFacilityByID(ctx context.Context, id int) (*Facility, error)
	ListFacilities(ctx context.Context, status string) ([]Facility, error)
	ListFacilitiesByOwner(ctx context.Context, ownerID int) ([]Facility, error)
	SetFacilityStatus(ctx context.Context, id int, status string) (*Facility, error)

	CreateCourt(ctx context.Context, facilityID int, name, sport string, hourlyRateCents int64) (*Court, error)
	GetCourtByID(ctx context.Context, id int) (*Court, error)
	GetCourtWithFacility(ctx context.Context, id int) (*CourtWithFacility, error)
	ListCourtsByFacility(ctx context.Context, facilityID int) ([]Court, error)
	UpdateCourt(ctx context.Context, id int, name *string, hourlyRateCents *int64, isActive *bool) (*Court, error)
	DeactivateCourt(ctx context.Context, id int) error
	DeleteCourt(ctx context.Context, id int) error
	CourtHasFutureBookings(ctx context.Context, courtID int) (bool, error)
}
