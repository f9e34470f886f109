package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tourhub/internal/errors"
	"tourhub/internal/model"
	"tourhub/internal/service"
)

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest represents a booking creation payload.
type CreateBookingRequest struct {
	TourID          string    `json:"tour_id" validate:"required,uuid"`
	NumberOfPeople  int       `json:"number_of_people" validate:"required,min=1"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required"`
	SpecialRequests string    `json:"special_requests" validate:"max=500"`
	ContactPhone    string    `json:"contact_phone" validate:"max=100"`
	ContactEmail    string    `json:"contact_email" validate:"omitempty,email"`
}

// UpdateBookingStatusRequest represents a status transition payload.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create godoc
// @Summary Create a booking for a tour
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookingRequest true "Booking data"
// @Success 201 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	actorID, role, err := actorFromContext(c)
	if err != nil {
		return err
	}
	if role != model.RoleTourist {
		return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
			Error: "only tourists can book tours",
			Code:  "FORBIDDEN",
		})
	}

	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	tourID, err := uuid.Parse(req.TourID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	booking, err := h.bookingService.Create(c.Request().Context(), actorID, service.CreateBookingInput{
		TourID:          tourID,
		NumberOfPeople:  req.NumberOfPeople,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		SpecialRequests: req.SpecialRequests,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, booking)
}

// Get godoc
// @Summary Get a booking (its tourist or the owning agency)
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} model.Booking
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	actorID, role, err := actorFromContext(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.bookingService.GetByID(c.Request().Context(), id, actorID, role)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, booking)
}

// ListMine godoc
// @Summary List the tourist's own bookings, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Booking
// @Router /bookings [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingService.ListByTourist(c.Request().Context(), actorID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, bookings)
}

// UpdateStatus godoc
// @Summary Advance a booking's status (agency only)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body UpdateBookingStatusRequest true "Target status"
// @Success 200 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	actorID, role, err := actorFromContext(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req UpdateBookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.bookingService.UpdateStatus(c.Request().Context(), id, actorID, role, model.BookingStatus(req.Status))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, booking)
}

// Cancel godoc
// @Summary Cancel the tourist's own booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} model.Booking
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id}/cancel [put]
func (h *BookingHandler) Cancel(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.bookingService.Cancel(c.Request().Context(), id, actorID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, booking)
}

// ListAgency godoc
// @Summary List bookings on the agency's tours, newest first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Booking
// @Router /agency/bookings [get]
func (h *BookingHandler) ListAgency(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingService.ListByAgency(c.Request().Context(), actorID, 0)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, bookings)
}

// ListRecentAgency godoc
// @Summary List the agency's most recent bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {array} model.Booking
// @Router /agency/bookings/recent [get]
func (h *BookingHandler) ListRecentAgency(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 10
	}

	bookings, err := h.bookingService.ListByAgency(c.Request().Context(), actorID, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, bookings)
}

// Stats godoc
// @Summary Booking and rating statistics for the agency dashboard
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.BookingStats
// @Router /agency/stats [get]
func (h *BookingHandler) Stats(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	stats, err := h.bookingService.Stats(c.Request().Context(), actorID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
