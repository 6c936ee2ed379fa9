package facility

import (
	"context"
	"errors"
	"testing"

	"courtly/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepo struct{ mock.Mock }

func (m *MockRepo) CreateFacility(ctx context.Context, ownerID int, name, location string) (*Facility, error) {
	args := m.Called(ctx, ownerID, name, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Facility), args.Error(1)
}

func (m *MockRepo) GetFacilityByID(ctx context.Context, id int) (*Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Facility), args.Error(1)
}

func (m *MockRepo) ListFacilities(ctx context.Context, status string) ([]Facility, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Facility), args.Error(1)
}

func (m *MockRepo) ListFacilitiesByOwner(ctx context.Context, ownerID int) ([]Facility, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Facility), args.Error(1)
}

func (m *MockRepo) SetFacilityStatus(ctx context.Context, id int, status string) (*Facility, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Facility), args.Error(1)
}

func (m *MockRepo) CreateCourt(ctx context.Context, facilityID int, name, sport string, hourlyRateCents int64) (*Court, error) {
	args := m.Called(ctx, facilityID, name, sport, hourlyRateCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Court), args.Error(1)
}

func (m *MockRepo) GetCourtByID(ctx context.Context, id int) (*Court, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Court), args.Error(1)
}

func (m *MockRepo) GetCourtWithFacility(ctx context.Context, id int) (*CourtWithFacility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CourtWithFacility), args.Error(1)
}

func (m *MockRepo) ListCourtsByFacility(ctx context.Context, facilityID int) ([]Court, error) {
	args := m.Called(ctx, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Court), args.Error(1)
}

func (m *MockRepo) UpdateCourt(ctx context.Context, id int, name *string, hourlyRateCents *int64, isActive *bool) (*Court, error) {
	args := m.Called(ctx, id, name, hourlyRateCents, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Court), args.Error(1)
}

func (m *MockRepo) DeactivateCourt(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepo) DeleteCourt(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRepo) CourtHasFutureBookings(ctx context.Context, courtID int) (bool, error) {
	args := m.Called(ctx, courtID)
	return args.Bool(0), args.Error(1)
}

func ownedCourt() *CourtWithFacility {
	return &CourtWithFacility{
		Court:           Court{ID: 2, FacilityID: 3, IsActive: true},
		FacilityStatus:  StatusApproved,
		FacilityOwnerID: 7,
	}
}

func TestService_ListFacilities(t *testing.T) {
	t.Run("admin sees everything", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("ListFacilities", mock.Anything, "").Return([]Facility{{ID: 1}, {ID: 2}}, nil)

		svc := NewService(repo)
		list, err := svc.ListFacilities(context.Background(), auth.Principal{UserID: 1, Role: auth.RoleAdmin})
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("owner sees own", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("ListFacilitiesByOwner", mock.Anything, 7).Return([]Facility{{ID: 3, OwnerID: 7}}, nil)

		svc := NewService(repo)
		list, err := svc.ListFacilities(context.Background(), auth.Principal{UserID: 7, Role: auth.RoleOwner})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("user sees approved only", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("ListFacilities", mock.Anything, StatusApproved).Return([]Facility{}, nil)

		svc := NewService(repo)
		_, err := svc.ListFacilities(context.Background(), auth.Principal{UserID: 1, Role: auth.RoleUser})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_CreateCourt(t *testing.T) {
	t.Run("owner creates court", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetFacilityByID", mock.Anything, 3).Return(&Facility{ID: 3, OwnerID: 7}, nil)
		repo.On("CreateCourt", mock.Anything, 3, "Court 1", "tennis", int64(50000)).Return(&Court{ID: 2}, nil)

		svc := NewService(repo)
		c, err := svc.CreateCourt(context.Background(), auth.Principal{UserID: 7, Role: auth.RoleOwner}, 3, CreateCourtRequest{
			Name:            "Court 1",
			Sport:           "tennis",
			HourlyRateCents: 50000,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, c.ID)
	})

	t.Run("other owner forbidden", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetFacilityByID", mock.Anything, 3).Return(&Facility{ID: 3, OwnerID: 7}, nil)

		svc := NewService(repo)
		_, err := svc.CreateCourt(context.Background(), auth.Principal{UserID: 99, Role: auth.RoleOwner}, 3, CreateCourtRequest{
			Name:            "Court 1",
			Sport:           "tennis",
			HourlyRateCents: 50000,
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing facility", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetFacilityByID", mock.Anything, 404).Return(nil, errors.New("sql: no rows in result set"))

		svc := NewService(repo)
		_, err := svc.CreateCourt(context.Background(), auth.Principal{UserID: 7, Role: auth.RoleOwner}, 404, CreateCourtRequest{
			Name:            "Court 1",
			Sport:           "tennis",
			HourlyRateCents: 50000,
		})
		assert.ErrorIs(t, err, ErrFacilityNotFound)
	})
}

func TestService_DeleteCourt(t *testing.T) {
	owner := auth.Principal{UserID: 7, Role: auth.RoleOwner}

	t.Run("hard delete without future bookings", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetCourtWithFacility", mock.Anything, 2).Return(ownedCourt(), nil)
		repo.On("CourtHasFutureBookings", mock.Anything, 2).Return(false, nil)
		repo.On("DeleteCourt", mock.Anything, 2).Return(nil)

		svc := NewService(repo)
		require.NoError(t, svc.DeleteCourt(context.Background(), owner, 2))
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "DeactivateCourt", mock.Anything, 2)
	})

	t.Run("deactivate when future bookings exist", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetCourtWithFacility", mock.Anything, 2).Return(ownedCourt(), nil)
		repo.On("CourtHasFutureBookings", mock.Anything, 2).Return(true, nil)
		repo.On("DeactivateCourt", mock.Anything, 2).Return(nil)

		svc := NewService(repo)
		require.NoError(t, svc.DeleteCourt(context.Background(), owner, 2))
		repo.AssertExpectations(t)
		repo.AssertNotCalled(t, "DeleteCourt", mock.Anything, 2)
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		repo := new(MockRepo)
		repo.On("GetCourtWithFacility", mock.Anything, 2).Return(ownedCourt(), nil)

		svc := NewService(repo)
		err := svc.DeleteCourt(context.Background(), auth.Principal{UserID: 99, Role: auth.RoleOwner}, 2)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestService_SetFacilityStatus(t *testing.T) {
	repo := new(MockRepo)
	repo.On("GetFacilityByID", mock.Anything, 3).Return(&Facility{ID: 3, Status: StatusPending}, nil)
	repo.On("SetFacilityStatus", mock.Anything, 3, StatusApproved).Return(&Facility{ID: 3, Status: StatusApproved}, nil)

	svc := NewService(repo)
	f, err := svc.SetFacilityStatus(context.Background(), 3, UpdateFacilityStatusRequest{Status: StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, f.Status)
}
