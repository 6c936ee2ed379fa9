package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"courtly/internal/api"
	"courtly/internal/auth"
	"courtly/internal/facility"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func respondError(c *gin.Context, err error) {
	var blocked *BlockedError
	var paymentFailed *PaymentFailedError

	switch {
	case errors.Is(err, ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking interval"})
	case errors.Is(err, ErrCourtUnavailable):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court is not available for booking"})
	case errors.As(err, &blocked):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: blocked.Error()})
	case errors.Is(err, ErrSlotTaken):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Time slot is already booked"})
	case errors.As(err, &paymentFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":   "Payment failed",
			"booking": paymentFailed.Booking,
		})
	case errors.Is(err, ErrInvalidState):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Operation not allowed in current booking status"})
	case errors.Is(err, ErrAlreadyFinal):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking is already in a final state"})
	case errors.Is(err, ErrTooLateToCancel):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking start time has already passed"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You are not allowed to act on this booking"})
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
	case errors.Is(err, facility.ErrFacilityNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Facility not found"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal error"})
	}
}

// @Summary      Create a booking
// @Description  Reserves [start_datetime, end_datetime) on a court. With a
// @Description  payment_method the charge runs immediately and the booking is
// @Description  returned CONFIRMED or FAILED; without one it stays PENDING.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        courtID path int true "Court ID"
// @Param        request body booking.CreateBookingRequest true "Booking payload"
// @Success      201 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      402 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /courts/{courtID}/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	courtID, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), principal, courtID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// @Summary      Check availability
// @Description  Read-only probe of whether an interval can be booked.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        courtID path int true "Court ID"
// @Param        start query string true "Start datetime (RFC3339)"
// @Param        end query string true "End datetime (RFC3339)"
// @Success      200 {object} booking.AvailabilityResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /courts/{courtID}/availability [get]
func (h *Handler) CheckAvailability(c *gin.Context) {
	courtID, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid start format, use RFC3339"})
		return
	}

	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid end format, use RFC3339"})
		return
	}

	err = h.service.CheckAvailability(c.Request.Context(), courtID, start, end)
	if err != nil {
		var blocked *BlockedError
		switch {
		case errors.Is(err, ErrSlotTaken):
			c.JSON(http.StatusOK, AvailabilityResponse{Available: false, Reason: "slot already booked"})
		case errors.As(err, &blocked):
			c.JSON(http.StatusOK, AvailabilityResponse{Available: false, Reason: blocked.Error()})
		default:
			respondError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{Available: true})
}

// @Summary      Pay for a pending booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path int true "Booking ID"
// @Param        request body booking.PayRequest true "Payment payload"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      402 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /bookings/{bookingID}/pay [post]
func (h *Handler) Pay(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.service.Pay(c.Request.Context(), principal, bookingID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// @Summary      Cancel a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path int true "Booking ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), principal, bookingID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled successfully"})
}

// @Summary      Update a pending booking
// @Description  Moves a PENDING booking to a new interval; price is recomputed.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path int true "Booking ID"
// @Param        request body booking.UpdateBookingRequest true "New interval"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /bookings/{bookingID} [patch]
func (h *Handler) UpdateBooking(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	booking, err := h.service.UpdateBooking(c.Request.Context(), principal, bookingID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} booking.Booking
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookings, err := h.service.GetUserBookings(c.Request.Context(), principal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      List bookings for a court
// @Tags         owner,bookings
// @Produce      json
// @Security     BearerAuth
// @Param        courtID path int true "Court ID"
// @Success      200 {array} booking.BookingWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /owner/courts/{courtID}/bookings [get]
func (h *Handler) ListBookingsByCourt(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	courtID, err := strconv.Atoi(c.Param("courtID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid court ID"})
		return
	}

	bookings, err := h.service.GetBookingsByCourt(c.Request.Context(), principal, courtID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      List bookings for a facility
// @Tags         owner,bookings
// @Produce      json
// @Security     BearerAuth
// @Param        facilityID path int true "Facility ID"
// @Success      200 {array} booking.BookingWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /owner/facilities/{facilityID}/bookings [get]
func (h *Handler) ListBookingsByFacility(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	facilityID, err := strconv.Atoi(c.Param("facilityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid facility ID"})
		return
	}

	bookings, err := h.service.GetBookingsByFacility(c.Request.Context(), principal, facilityID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      Booking analytics
// @Description  Aggregated booking counts and revenue. Admin only.
// @Tags         admin,bookings
// @Produce      json
// @Security     BearerAuth
// @Param        group_by query string false "Group by dimension (day or facility)"
// @Param        from query string true "Start datetime (RFC3339)"
// @Param        to query string true "End datetime (RFC3339)"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/analytics/bookings [get]
func (h *Handler) GetBookingAnalytics(c *gin.Context) {
	groupBy := c.DefaultQuery("group_by", "day")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "from and to query params are required"})
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid from format, use RFC3339"})
		return
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid to format, use RFC3339"})
		return
	}

	switch groupBy {
	case "day":
		stats, err := h.service.GetBookingStatsByDay(c.Request.Context(), from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"group_by": "day", "from": from, "to": to, "data": stats})
	case "facility":
		stats, err := h.service.GetBookingStatsByFacility(c.Request.Context(), from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"group_by": "facility", "from": from, "to": to, "data": stats})
	default:
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "group_by must be 'day' or 'facility'"})
	}
}
