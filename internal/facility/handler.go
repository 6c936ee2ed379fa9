package facility

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

// @Summary      Create a facility
// @Description  Owner-only: register a new facility. Starts in pending state.
// @Tags         owner,facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body facility.CreateFacilityRequest true "Facility payload"
// @Success      201 {object} facility.Facility
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /owner/facilities [post]
func (h *Handler) CreateFacility(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	f, err := h.service.CreateFacility(c.Request.Context(), principal, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create facility"})
		return
	}

	c.JSON(http.StatusCreated, f)
}

// @Summary      List facilities
// @Description  Users see approved facilities, owners see their own, admins see all.
// @Tags         facilities
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} facility.Facility
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /facilities [get]
func (h *Handler) ListFacilities(c *gin.Context) {
	principal, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	facilities, err := h.service.ListFacilities(c.Request.Context(), principal)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch facilities"})
		return
	}

	c.JSON(http.StatusOK, facilities)
}

// @Summary      Approve or reject a facility
// @Tags         admin,facilities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        facilityID path int true "Facility ID"
// @Param        request body facility.UpdateFacilityStatusRequest true "Status payload"
// @Success      200 {object} facility.Facility
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/facilities/{facilityID}/status [patch]
func (h *Handler) SetFacilityStatus(c *gin.Context) {
	facilityID, err := strconv.Atoi(c.Param("facilityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid facility ID"})
		return
	}

	var req UpdateFacilityStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	f, err := h.service.SetFacilityStatus(c.Request.Context(), facilityID, req)
	if err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Facility not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update facility"})
		return
	}

	c.JSON(http.StatusOK, f)
}

// @Summary      Create a court
// @Tags         owner,courts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        facilityID path int true "Facility ID"
// @Param        request body facility.CreateCourtRequest true "Court payload"
// @Success      201 {object} facility.Court
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /owner/facilities/{facilityID}/courts [post]
func (h *Handler) CreateCourt(c *gin.Context) {
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

	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	court, err := h.service.CreateCourt(c.Request.Context(), principal, facilityID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrFacilityNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Facility not found"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You do not manage this facility"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create court"})
		}
		return
	}

	c.JSON(http.StatusCreated, court)
}

// @Summary      List courts of a facility
// @Tags         facilities,courts
// @Produce      json
// @Security     BearerAuth
// @Param        facilityID path int true "Facility ID"
// @Success      200 {array} facility.Court
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /facilities/{facilityID}/courts [get]
func (h *Handler) ListCourts(c *gin.Context) {
	facilityID, err := strconv.Atoi(c.Param("facilityID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid facility ID"})
		return
	}

	courts, err := h.service.ListCourts(c.Request.Context(), facilityID)
	if err != nil {
		if errors.Is(err, ErrFacilityNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Facility not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch courts"})
		return
	}

	c.JSON(http.StatusOK, courts)
}

// @Summary      Update a court
// @Tags         owner,courts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        courtID path int true "Court ID"
// @Param        request body facility.UpdateCourtRequest true "Court patch"
// @Success      200 {object} facility.Court
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /owner/courts/{courtID} [patch]
func (h *Handler) UpdateCourt(c *gin.Context) {
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

	var req UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	court, err := h.service.UpdateCourt(c.Request.Context(), principal, courtID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrCourtNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You do not manage this court"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update court"})
		}
		return
	}

	c.JSON(http.StatusOK, court)
}

// @Summary      Delete a court
// @Description  Deletes a court; with future bookings it is deactivated instead.
// @Tags         owner,courts
// @Produce      json
// @Security     BearerAuth
// @Param        courtID path int true "Court ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /owner/courts/{courtID} [delete]
func (h *Handler) DeleteCourt(c *gin.Context) {
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

	if err := h.service.DeleteCourt(c.Request.Context(), principal, courtID); err != nil {
		switch {
		case errors.Is(err, ErrCourtNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Court not found"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You do not manage this court"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete court"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Court deleted"})
}
