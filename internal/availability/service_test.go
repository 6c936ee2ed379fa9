package availability

import (
	"context"
	"testing"
	"time"

	"courtly/internal/auth"
	"courtly/internal/facility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSlotRepo struct{ mock.Mock }
type MockFacilityRepo struct{ mock.Mock }

func (m *MockSlotRepo) CreateSlot(ctx context.Context, courtID int, start, end time.Time, blocked bool, reason *string) (*Slot, error) {
	args := m.Called(ctx, courtID, start, end, blocked, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Slot), args.Error(1)
}

func (m *MockSlotRepo) GetSlotByID(ctx context.Context, id int) (*Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Slot), args.Error(1)
}

func (m *MockSlotRepo) ListSlotsByCourt(ctx context.Context, courtID int) ([]Slot, error) {
	args := m.Called(ctx, courtID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Slot), args.Error(1)
}

func (m *MockSlotRepo) UpdateSlot(ctx context.Context, id int, start, end time.Time, blocked bool, reason *string) (*Slot, error) {
	args := m.Called(ctx, id, start, end, blocked, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Slot), args.Error(1)
}

func (m *MockSlotRepo) DeleteSlot(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFacilityRepo) CreateFacility(ctx context.Context, ownerID int, name, location string) (*facility.Facility, error) {
	args := m.Called(ctx, ownerID, name, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Facility), args.Error(1)
}

func (m *MockFacilityRepo) GetFacilityByID(ctx context.Context, id int) (*facility.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Facility), args.Error(1)
}

func (m *MockFacilityRepo) ListFacilities(ctx context.Context, status string) ([]facility.Facility, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]facility.Facility), args.Error(1)
}

func (m *MockFacilityRepo) ListFacilitiesByOwner(ctx context.Context, ownerID int) ([]facility.Facility, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]facility.Facility), args.Error(1)
}

func (m *MockFacilityRepo) SetFacilityStatus(ctx context.Context, id int, status string) (*facility.Facility, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Facility), args.Error(1)
}

func (m *MockFacilityRepo) CreateCourt(ctx context.Context, facilityID int, name, sport string, hourlyRateCents int64) (*facility.Court, error) {
	args := m.Called(ctx, facilityID, name, sport, hourlyRateCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Court), args.Error(1)
}

func (m *MockFacilityRepo) GetCourtByID(ctx context.Context, id int) (*facility.Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Court), args.Error(1)
}

func (m *MockFacilityRepo) GetCourtWithFacility(ctx context.Context, id int) (*facility.CourtWithFacility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.CourtWithFacility), args.Error(1)
}

func (m *MockFacilityRepo) ListCourtsByFacility(ctx context.Context, facilityID int) ([]facility.Court, error) {
	args := m.Called(ctx, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]facility.Court), args.Error(1)
}

func (m *MockFacilityRepo) UpdateCourt(ctx context.Context, id int, name *string, hourlyRateCents *int64, isActive *bool) (*facility.Court, error) {
	args := m.Called(ctx, id, name, hourlyRateCents, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Court), args.Error(1)
}

func (m *MockFacilityRepo) DeactivateCourt(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFacilityRepo) DeleteCourt(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFacilityRepo) CourtHasFutureBookings(ctx context.Context, courtID int) (bool, error) {
	args := m.Called(ctx, courtID)
	return args.Bool(0), args.Error(1)
}

func ownedCourt() *facility.CourtWithFacility {
	return &facility.CourtWithFacility{
		Court: facility.Court{
			ID:         2,
			FacilityID: 3,
			IsActive:   true,
		},
		FacilityStatus:  facility.StatusApproved,
		FacilityOwnerID: 7,
	}
}

func TestService_CreateBlackout(t *testing.T) {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	end := start.Add(4 * time.Hour)
	owner := auth.Principal{UserID: 7, Role: auth.RoleOwner}

	t.Run("owner creates blackout", func(t *testing.T) {
		sr := new(MockSlotRepo)
		fr := new(MockFacilityRepo)

		fr.On("GetCourtWithFacility", mock.Anything, 2).Return(ownedCourt(), nil)
		reason := "maintenance"
		sr.On("CreateSlot", mock.Anything, 2, start, end, true, &reason).Return(&Slot{
			ID:      5,
			CourtID: 2,
			Blocked: true,
			Reason:  &reason,
		}, nil)

		svc := NewService(sr, fr)
		slot, err := svc.CreateBlackout(context.Background(), owner, 2, CreateSlotRequest{
			StartDatetime: start.Format(time.RFC3339),
			EndDatetime:   end.Format(time.RFC3339),
			Reason:        &reason,
		})

		require.NoError(t, err)
		assert.True(t, slot.Blocked)
		sr.AssertExpectations(t)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		fr := new(MockFacilityRepo)
		fr.On("GetCourtWithFacility", mock.Anything, 2).Return(ownedCourt(), nil)

		svc := NewService(new(MockSlotRepo), fr)
		_, err := svc.CreateBlackout(context.Background(), auth.Principal{UserID: 99, Role: auth.RoleOwner}, 2, CreateSlotRequest{
			StartDatetime: start.Format(time.RFC3339),
			EndDatetime:   end.Format(time.RFC3339),
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin allowed on any court", func(t *testing.T) {
		sr := new(MockSlotRepo)
		fr := new(MockFacilityRepo)

		fr.On("GetCourtWithFacility", mock.Anything, 2).Return(ownedCourt(), nil)
		sr.On("CreateSlot", mock.Anything, 2, start, end, true, (*string)(nil)).Return(&Slot{ID: 5, Blocked: true}, nil)

		svc := NewService(sr, fr)
		_, err := svc.CreateBlackout(context.Background(), auth.Principal{UserID: 1, Role: auth.RoleAdmin}, 2, CreateSlotRequest{
			StartDatetime: start.Format(time.RFC3339),
			EndDatetime:   end.Format(time.RFC3339),
		})
		assert.NoError(t, err)
	})

	t.Run("inverted interval rejected", func(t *testing.T) {
		fr := new(MockFacilityRepo)
		fr.On("GetCourtWithFacility", mock.Anything, 2).Return(ownedCourt(), nil)

		svc := NewService(new(MockSlotRepo), fr)
		_, err := svc.CreateBlackout(context.Background(), owner, 2, CreateSlotRequest{
			StartDatetime: end.Format(time.RFC3339),
			EndDatetime:   start.Format(time.RFC3339),
		})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("overlap surfaces", func(t *testing.T) {
		sr := new(MockSlotRepo)
		fr := new(MockFacilityRepo)

		fr.On("GetCourtWithFacility", mock.Anything, 2).Return(ownedCourt(), nil)
		sr.On("CreateSlot", mock.Anything, 2, start, end, true, (*string)(nil)).Return(nil, ErrOverlappingSlot)

		svc := NewService(sr, fr)
		_, err := svc.CreateBlackout(context.Background(), owner, 2, CreateSlotRequest{
			StartDatetime: start.Format(time.RFC3339),
			EndDatetime:   end.Format(time.RFC3339),
		})
		assert.ErrorIs(t, err, ErrOverlappingSlot)
	})

	t.Run("unknown court", func(t *testing.T) {
		fr := new(MockFacilityRepo)
		fr.On("GetCourtWithFacility", mock.Anything, 404).Return(nil, facility.ErrCourtNotFound)

		svc := NewService(new(MockSlotRepo), fr)
		_, err := svc.CreateBlackout(context.Background(), owner, 404, CreateSlotRequest{
			StartDatetime: start.Format(time.RFC3339),
			EndDatetime:   end.Format(time.RFC3339),
		})
		assert.ErrorIs(t, err, ErrCourtNotFound)
	})
}

func TestService_UpdateBlackout(t *testing.T) {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	end := start.Add(2 * time.Hour)
	owner := auth.Principal{UserID: 7, Role: auth.RoleOwner}

	t.Run("patches only provided fields", func(t *testing.T) {
		sr := new(MockSlotRepo)
		fr := new(MockFacilityRepo)

		reason := "league night"
		sr.On("GetSlotByID", mock.Anything, 5).Return(&Slot{
			ID:            5,
			CourtID:       2,
			StartDatetime: start,
			EndDatetime:   end,
			Blocked:       true,
			Reason:        &reason,
		}, nil)
		fr.On("GetCourtWithFacility", mock.Anything, 2).Return(ownedCourt(), nil)

		newEnd := end.Add(time.Hour)
		sr.On("UpdateSlot", mock.Anything, 5, start, newEnd, true, &reason).Return(&Slot{
			ID:            5,
			CourtID:       2,
			StartDatetime: start,
			EndDatetime:   newEnd,
			Blocked:       true,
			Reason:        &reason,
		}, nil)

		newEndStr := newEnd.Format(time.RFC3339)
		svc := NewService(sr, fr)
		slot, err := svc.UpdateBlackout(context.Background(), owner, 5, UpdateSlotRequest{
			EndDatetime: &newEndStr,
		})

		require.NoError(t, err)
		assert.Equal(t, newEnd, slot.EndDatetime)
		sr.AssertExpectations(t)
	})

	t.Run("missing slot", func(t *testing.T) {
		sr := new(MockSlotRepo)
		sr.On("GetSlotByID", mock.Anything, 404).Return(nil, ErrSlotNotFound)

		svc := NewService(sr, new(MockFacilityRepo))
		_, err := svc.UpdateBlackout(context.Background(), owner, 404, UpdateSlotRequest{})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestService_DeleteBlackout(t *testing.T) {
	owner := auth.Principal{UserID: 7, Role: auth.RoleOwner}

	sr := new(MockSlotRepo)
	fr := new(MockFacilityRepo)

	sr.On("GetSlotByID", mock.Anything, 5).Return(&Slot{ID: 5, CourtID: 2}, nil)
	fr.On("GetCourtWithFacility", mock.Anything, 2).Return(ownedCourt(), nil)
	sr.On("DeleteSlot", mock.Anything, 5).Return(nil)

	svc := NewService(sr, fr)
	require.NoError(t, svc.DeleteBlackout(context.Background(), owner, 5))
	sr.AssertExpectations(t)
}
