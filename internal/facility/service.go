package facility

import (
	"context"
	"errors"

	"courtly/internal/auth"
)

var (
	ErrFacilityNotFound = errors.New("facility not found")
	ErrCourtNotFound    = errors.New("court not found")
	ErrForbidden        = errors.New("not allowed to manage this facility")
)

type Service interface {
	CreateFacility(ctx context.Context, principal auth.Principal, req CreateFacilityRequest) (*Facility, error)
	ListFacilities(ctx context.Context, principal auth.Principal) ([]Facility, error)
	SetFacilityStatus(ctx context.Context, facilityID int, req UpdateFacilityStatusRequest) (*Facility, error)

	CreateCourt(ctx context.Context, principal auth.Principal, facilityID int, req CreateCourtRequest) (*Court, error)
	ListCourts(ctx context.Context, facilityID int) ([]Court, error)
	UpdateCourt(ctx context.Context, principal auth.Principal, courtID int, req UpdateCourtRequest) (*Court, error)
	DeleteCourt(ctx context.Context, principal auth.Principal, courtID int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateFacility(ctx context.Context, principal auth.Principal, req CreateFacilityRequest) (*Facility, error) {
	return s.repo.CreateFacility(ctx, principal.UserID, req.Name, req.Location)
}

func (s *service) ListFacilities(ctx context.Context, principal auth.Principal) ([]Facility, error) {
	switch principal.Role {
	case auth.RoleAdmin:
		return s.repo.ListFacilities(ctx, "")
	case auth.RoleOwner:
		return s.repo.ListFacilitiesByOwner(ctx, principal.UserID)
	default:
		// Regular users only see facilities open for booking.
		return s.repo.ListFacilities(ctx, StatusApproved)
	}
}

func (s *service) SetFacilityStatus(ctx context.Context, facilityID int, req UpdateFacilityStatusRequest) (*Facility, error) {
	if _, err := s.repo.GetFacilityByID(ctx, facilityID); err != nil {
		return nil, ErrFacilityNotFound
	}
	return s.repo.SetFacilityStatus(ctx, facilityID, req.Status)
}

func (s *service) CreateCourt(ctx context.Context, principal auth.Principal, facilityID int, req CreateCourtRequest) (*Court, error) {
	f, err := s.repo.GetFacilityByID(ctx, facilityID)
	if err != nil {
		return nil, ErrFacilityNotFound
	}

	if !principal.IsAdmin() && f.OwnerID != principal.UserID {
		return nil, ErrForbidden
	}

	return s.repo.CreateCourt(ctx, facilityID, req.Name, req.Sport, req.HourlyRateCents)
}

func (s *service) ListCourts(ctx context.Context, facilityID int) ([]Court, error) {
	if _, err := s.repo.GetFacilityByID(ctx, facilityID); err != nil {
		return nil, ErrFacilityNotFound
	}
	return s.repo.ListCourtsByFacility(ctx, facilityID)
}

func (s *service) UpdateCourt(ctx context.Context, principal auth.Principal, courtID int, req UpdateCourtRequest) (*Court, error) {
	cwf, err := s.repo.GetCourtWithFacility(ctx, courtID)
	if err != nil {
		return nil, ErrCourtNotFound
	}

	if !principal.IsAdmin() && cwf.FacilityOwnerID != principal.UserID {
		return nil, ErrForbidden
	}

	return s.repo.UpdateCourt(ctx, courtID, req.Name, req.HourlyRateCents, req.IsActive)
}

// DeleteCourt removes a court, unless it still has future non-terminal
// bookings; then it is only deactivated so existing reservations stay
// resolvable.
func (s *service) DeleteCourt(ctx context.Context, principal auth.Principal, courtID int) error {
	cwf, err := s.repo.GetCourtWithFacility(ctx, courtID)
	if err != nil {
		return ErrCourtNotFound
	}

	if !principal.IsAdmin() && cwf.FacilityOwnerID != principal.UserID {
		return ErrForbidden
	}

	hasBookings, err := s.repo.CourtHasFutureBookings(ctx, courtID)
	if err != nil {
		return err
	}
	if hasBookings {
		return s.repo.DeactivateCourt(ctx, courtID)
	}

	return s.repo.DeleteCourt(ctx, courtID)
}
