package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtly/internal/auth"
	"courtly/internal/email"
	"courtly/internal/facility"
	"courtly/internal/logger"
	"courtly/internal/metrics"
	"courtly/internal/payment"
	"courtly/internal/user"
)

var (
	ErrForbidden       = errors.New("not allowed to act on this booking")
	ErrAlreadyFinal    = errors.New("booking is already in a final state")
	ErrTooLateToCancel = errors.New("booking start time has already passed")
)

// PaymentFailedError reports a declined or timed-out charge. The booking is
// kept on record in FAILED state so the attempt stays auditable.
type PaymentFailedError struct {
	Booking *Booking
}

func (e *PaymentFailedError) Error() string {
	return fmt.Sprintf("payment failed for booking %d", e.Booking.ID)
}

type Service interface {
	CreateBooking(ctx context.Context, principal auth.Principal, courtID int, req CreateBookingRequest) (*Booking, error)
	Pay(ctx context.Context, principal auth.Principal, bookingID int, req PayRequest) (*Booking, error)
	Cancel(ctx context.Context, principal auth.Principal, bookingID int) error
	UpdateBooking(ctx context.Context, principal auth.Principal, bookingID int, req UpdateBookingRequest) (*Booking, error)
	CheckAvailability(ctx context.Context, courtID int, start, end time.Time) error
	GetUserBookings(ctx context.Context, principal auth.Principal) ([]Booking, error)
	GetBookingsByCourt(ctx context.Context, principal auth.Principal, courtID int) ([]BookingWithDetails, error)
	GetBookingsByFacility(ctx context.Context, principal auth.Principal, facilityID int) ([]BookingWithDetails, error)
	GetBookingStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error)
	GetBookingStatsByFacility(ctx context.Context, from, to time.Time) ([]FacilityStat, error)
}

type service struct {
	repo           Repository
	facilityRepo   facility.Repository
	userRepo       user.Repository
	gateway        payment.Gateway
	emailService   *email.Service
	paymentTimeout time.Duration
}

func NewService(
	repo Repository,
	facilityRepo facility.Repository,
	userRepo user.Repository,
	gateway payment.Gateway,
	emailService *email.Service,
	paymentTimeout time.Duration,
) Service {
	return &service{
		repo:           repo,
		facilityRepo:   facilityRepo,
		userRepo:       userRepo,
		gateway:        gateway,
		emailService:   emailService,
		paymentTimeout: paymentTimeout,
	}
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

func (s *service) CreateBooking(ctx context.Context, principal auth.Principal, courtID int, req CreateBookingRequest) (*Booking, error) {
	start, end, err := parseInterval(req.StartDatetime, req.EndDatetime)
	if err != nil {
		return nil, err
	}

	if !start.After(time.Now()) {
		return nil, ErrInvalidInterval
	}

	court, err := s.facilityRepo.GetCourtWithFacility(ctx, courtID)
	if err != nil {
		return nil, ErrCourtUnavailable
	}
	if !court.IsActive || court.FacilityStatus != facility.StatusApproved {
		return nil, ErrCourtUnavailable
	}

	priceCents, err := PriceCents(court.HourlyRateCents, start, end)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateBooking(ctx, &Booking{
		UserID:          principal.UserID,
		CourtID:         courtID,
		FacilityID:      court.FacilityID,
		StartDatetime:   start,
		EndDatetime:     end,
		TotalPriceCents: priceCents,
	})
	if err != nil {
		recordConflict(err)
		return nil, err
	}

	metrics.RecordBooking(string(created.Status))

	if req.PaymentMethod == "" {
		return created, nil
	}

	// The PENDING row already owns the slot, so the charge runs outside the
	// court lock and only a small guarded status update follows it.
	return s.charge(ctx, created, req.PaymentMethod)
}

func (s *service) Pay(ctx context.Context, principal auth.Principal, bookingID int, req PayRequest) (*Booking, error) {
	b, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !principal.IsAdmin() && b.UserID != principal.UserID {
		return nil, ErrForbidden
	}

	if b.Status != StatusPending {
		return nil, ErrInvalidState
	}

	return s.charge(ctx, b, req.PaymentMethod)
}

// charge runs the payment gateway call for a PENDING booking and applies the
// resulting lifecycle transition. A declined charge, gateway error, or
// timeout all commit the booking as FAILED rather than rolling it back.
func (s *service) charge(ctx context.Context, b *Booking, method string) (*Booking, error) {
	chargeCtx, cancel := context.WithTimeout(ctx, s.paymentTimeout)
	defer cancel()

	started := time.Now()
	outcome, err := s.gateway.Charge(chargeCtx, b.TotalPriceCents, method)
	elapsed := time.Since(started).Seconds()

	if err != nil || !outcome.Success {
		metrics.RecordPaymentCharge("failure", elapsed)
		if err != nil {
			logger.Error("payment charge failed", "booking_id", b.ID, "error", err)
		}

		next, terr := b.Status.Apply(EventPaymentFailed)
		if terr != nil {
			return nil, terr
		}
		if uerr := s.repo.UpdateStatus(ctx, b.ID, b.Status, next, nil); uerr != nil {
			return nil, uerr
		}

		b.Status = next
		metrics.RecordBooking(string(next))
		return b, &PaymentFailedError{Booking: b}
	}

	metrics.RecordPaymentCharge("success", elapsed)

	next, terr := b.Status.Apply(EventPaymentSucceeded)
	if terr != nil {
		return nil, terr
	}

	ref := outcome.Reference
	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, next, &ref); err != nil {
		return nil, err
	}

	b.Status = next
	b.TxnReference = &ref
	metrics.RecordBooking(string(next))

	s.notifyConfirmation(ctx, b)
	return b, nil
}

func (s *service) Cancel(ctx context.Context, principal auth.Principal, bookingID int) error {
	b, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.authorizeCancel(ctx, principal, b); err != nil {
		return err
	}

	now := time.Now()
	if b.EffectiveStatus(now).Terminal() {
		return ErrAlreadyFinal
	}
	if b.StartDatetime.Before(now) {
		return ErrTooLateToCancel
	}

	next, err := b.Status.Apply(EventCancel)
	if err != nil {
		return ErrAlreadyFinal
	}

	// The guarded update loses against a concurrent transition of the same
	// booking, so read-then-write cannot double-cancel.
	if err := s.repo.UpdateStatus(ctx, b.ID, b.Status, next, nil); err != nil {
		if errors.Is(err, ErrInvalidState) {
			return ErrAlreadyFinal
		}
		return err
	}

	// Refunds for paid bookings are intentionally not issued here; the refund
	// policy is undecided. See DESIGN.md.
	metrics.RecordBookingCancellation()
	s.notifyCancellation(ctx, b)
	return nil
}

func (s *service) authorizeCancel(ctx context.Context, principal auth.Principal, b *Booking) error {
	if principal.IsAdmin() || b.UserID == principal.UserID {
		return nil
	}

	court, err := s.facilityRepo.GetCourtWithFacility(ctx, b.CourtID)
	if err != nil || court.FacilityOwnerID != principal.UserID {
		return ErrForbidden
	}

	return nil
}

func (s *service) UpdateBooking(ctx context.Context, principal auth.Principal, bookingID int, req UpdateBookingRequest) (*Booking, error) {
	b, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !principal.IsAdmin() && b.UserID != principal.UserID {
		return nil, ErrForbidden
	}

	if b.Status != StatusPending {
		return nil, ErrInvalidState
	}

	start, end, err := parseInterval(req.StartDatetime, req.EndDatetime)
	if err != nil {
		return nil, err
	}
	if !start.After(time.Now()) {
		return nil, ErrInvalidInterval
	}

	court, err := s.facilityRepo.GetCourtWithFacility(ctx, b.CourtID)
	if err != nil {
		return nil, ErrCourtUnavailable
	}

	priceCents, err := PriceCents(court.HourlyRateCents, start, end)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateInterval(ctx, bookingID, start, end, priceCents)
	if err != nil {
		recordConflict(err)
		return nil, err
	}

	return updated, nil
}

func (s *service) CheckAvailability(ctx context.Context, courtID int, start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidInterval
	}
	return s.repo.CheckAvailability(ctx, courtID, start, end)
}

func (s *service) GetUserBookings(ctx context.Context, principal auth.Principal) ([]Booking, error) {
	return s.repo.GetUserBookings(ctx, principal.UserID)
}

func (s *service) GetBookingsByCourt(ctx context.Context, principal auth.Principal, courtID int) ([]BookingWithDetails, error) {
	court, err := s.facilityRepo.GetCourtWithFacility(ctx, courtID)
	if err != nil {
		return nil, ErrCourtUnavailable
	}

	if !principal.IsAdmin() && court.FacilityOwnerID != principal.UserID {
		return nil, ErrForbidden
	}

	return s.repo.GetBookingsByCourt(ctx, courtID)
}

func (s *service) GetBookingsByFacility(ctx context.Context, principal auth.Principal, facilityID int) ([]BookingWithDetails, error) {
	f, err := s.facilityRepo.GetFacilityByID(ctx, facilityID)
	if err != nil {
		return nil, facility.ErrFacilityNotFound
	}

	if !principal.IsAdmin() && f.OwnerID != principal.UserID {
		return nil, ErrForbidden
	}

	return s.repo.GetBookingsByFacility(ctx, facilityID)
}

func (s *service) GetBookingStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	return s.repo.GetBookingStatsByDay(ctx, from, to)
}

func (s *service) GetBookingStatsByFacility(ctx context.Context, from, to time.Time) ([]FacilityStat, error) {
	return s.repo.GetBookingStatsByFacility(ctx, from, to)
}

func (s *service) notifyConfirmation(ctx context.Context, b *Booking) {
	if s.emailService == nil {
		return
	}

	u, err := s.userRepo.FindByID(ctx, b.UserID)
	if err != nil {
		return
	}

	s.emailService.SendBookingConfirmation(
		ctx,
		u.Email,
		u.Name,
		b.StartDatetime.Format("Jan 2, 2006 at 3:04 PM"),
		b.TotalPriceCents,
	)
}

func (s *service) notifyCancellation(ctx context.Context, b *Booking) {
	if s.emailService == nil {
		return
	}

	u, err := s.userRepo.FindByID(ctx, b.UserID)
	if err != nil {
		return
	}

	s.emailService.SendBookingCancellation(
		ctx,
		u.Email,
		u.Name,
		b.StartDatetime.Format("Jan 2, 2006 at 3:04 PM"),
	)
}

func recordConflict(err error) {
	var blocked *BlockedError
	switch {
	case errors.Is(err, ErrSlotTaken):
		metrics.RecordBookingConflict("slot_taken")
	case errors.As(err, &blocked):
		metrics.RecordBookingConflict("blocked")
	case errors.Is(err, ErrCourtUnavailable):
		metrics.RecordBookingConflict("unavailable")
	}
}
