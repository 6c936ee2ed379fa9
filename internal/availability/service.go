package availability

import (
	"context"
	"errors"
	"time"

	"courtly/internal/auth"
	"courtly/internal/facility"
	"courtly/internal/metrics"
)

var (
	ErrInvalidInterval = errors.New("invalid slot interval")
	ErrCourtNotFound   = errors.New("court not found")
	ErrForbidden       = errors.New("not allowed to manage this court's availability")
)

type Service interface {
	CreateBlackout(ctx context.Context, principal auth.Principal, courtID int, req CreateSlotRequest) (*Slot, error)
	UpdateBlackout(ctx context.Context, principal auth.Principal, slotID int, req UpdateSlotRequest) (*Slot, error)
	DeleteBlackout(ctx context.Context, principal auth.Principal, slotID int) error
	ListByCourt(ctx context.Context, principal auth.Principal, courtID int) ([]Slot, error)
}

type service struct {
	repo         Repository
	facilityRepo facility.Repository
}

func NewService(repo Repository, facilityRepo facility.Repository) Service {
	return &service{
		repo:         repo,
		facilityRepo: facilityRepo,
	}
}

// authorize resolves ownership through Court -> Facility -> owner.
func (s *service) authorize(ctx context.Context, principal auth.Principal, courtID int) error {
	court, err := s.facilityRepo.GetCourtWithFacility(ctx, courtID)
	if err != nil {
		return ErrCourtNotFound
	}

	if !principal.IsAdmin() && court.FacilityOwnerID != principal.UserID {
		return ErrForbidden
	}

	return nil
}

func parseInterval(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidInterval
	}

	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidInterval
	}

	if !start.Before(end) {
		return time.Time{}, time.Time{}, ErrInvalidInterval
	}

	return start, end, nil
}

func (s *service) CreateBlackout(ctx context.Context, principal auth.Principal, courtID int, req CreateSlotRequest) (*Slot, error) {
	if err := s.authorize(ctx, principal, courtID); err != nil {
		return nil, err
	}

	start, end, err := parseInterval(req.StartDatetime, req.EndDatetime)
	if err != nil {
		return nil, err
	}

	slot, err := s.repo.CreateSlot(ctx, courtID, start, end, true, req.Reason)
	if err != nil {
		return nil, err
	}

	metrics.RecordBlackoutMutation("create")
	return slot, nil
}

func (s *service) UpdateBlackout(ctx context.Context, principal auth.Principal, slotID int, req UpdateSlotRequest) (*Slot, error) {
	current, err := s.repo.GetSlotByID(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, principal, current.CourtID); err != nil {
		return nil, err
	}

	start := current.StartDatetime
	end := current.EndDatetime
	blocked := current.Blocked
	reason := current.Reason

	if req.StartDatetime != nil {
		start, err = time.Parse(time.RFC3339, *req.StartDatetime)
		if err != nil {
			return nil, ErrInvalidInterval
		}
	}
	if req.EndDatetime != nil {
		end, err = time.Parse(time.RFC3339, *req.EndDatetime)
		if err != nil {
			return nil, ErrInvalidInterval
		}
	}
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}
	if req.Blocked != nil {
		blocked = *req.Blocked
	}
	if req.Reason != nil {
		reason = req.Reason
	}

	slot, err := s.repo.UpdateSlot(ctx, slotID, start, end, blocked, reason)
	if err != nil {
		return nil, err
	}

	metrics.RecordBlackoutMutation("update")
	return slot, nil
}

func (s *service) DeleteBlackout(ctx context.Context, principal auth.Principal, slotID int) error {
	current, err := s.repo.GetSlotByID(ctx, slotID)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, principal, current.CourtID); err != nil {
		return err
	}

	if err := s.repo.DeleteSlot(ctx, slotID); err != nil {
		return err
	}

	metrics.RecordBlackoutMutation("delete")
	return nil
}

func (s *service) ListByCourt(ctx context.Context, principal auth.Principal, courtID int) ([]Slot, error) {
	if err := s.authorize(ctx, principal, courtID); err != nil {
		return nil, err
	}

	return s.repo.ListSlotsByCourt(ctx, courtID)
}
