package availability

import (
	"errors"
	"net/http"
	"strconv"

	"courtly/internal/api"
	"courtly/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot interval"})
	case errors.Is(err, ErrCourtNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
	case errors.Is(err, ErrSlotNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Availability slot not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You do not manage this court"})
	case errors.Is(err, ErrOverlappingSlot):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Interval overlaps an existing availability slot"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal error"})
	}
}

// @Summary      Declare a blackout window
// @Description  Blocks [start_datetime, end_datetime) on a court so it cannot be booked.
// @Tags         owner,availability
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        courtID path int true "Court ID"
// @Param        request body availability.CreateSlotRequest true "Blackout payload"
// @Success      201 {object} availability.Slot
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /owner/courts/{courtID}/blackouts [post]
func (h *Handler) CreateBlackout(c *gin.Context) {
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

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	slot, err := h.service.CreateBlackout(c.Request.Context(), principal, courtID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// @Summary      List availability slots of a court
// @Tags         owner,availability
// @Produce      json
// @Security     BearerAuth
// @Param        courtID path int true "Court ID"
// @Success      200 {array} availability.Slot
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /owner/courts/{courtID}/blackouts [get]
func (h *Handler) ListByCourt(c *gin.Context) {
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

	slots, err := h.service.ListByCourt(c.Request.Context(), principal, courtID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

// @Summary      Update a blackout window
// @Tags         owner,availability
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        slotID path int true "Slot ID"
// @Param        request body availability.UpdateSlotRequest true "Slot patch"
// @Success      200 {object} availability.Slot
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /owner/blackouts/{slotID} [patch]
func (h *Handler) UpdateBlackout(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	slot, err := h.service.UpdateBlackout(c.Request.Context(), principal, slotID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// @Summary      Remove a blackout window
// @Tags         owner,availability
// @Produce      json
// @Security     BearerAuth
// @Param        slotID path int true "Slot ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /owner/blackouts/{slotID} [delete]
func (h *Handler) DeleteBlackout(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid slot ID"})
		return
	}

	if err := h.service.DeleteBlackout(c.Request.Context(), principal, slotID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Blackout removed"})
}
