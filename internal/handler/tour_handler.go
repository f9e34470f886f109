package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"tourhub/internal/errors"
	"tourhub/internal/model"
	"tourhub/internal/repository"
	"tourhub/internal/service"
)

// TourHandler handles tour catalog endpoints.
type TourHandler struct {
	tourService service.TourService
}

// NewTourHandler creates a new tour handler.
func NewTourHandler(tourService service.TourService) *TourHandler {
	return &TourHandler{tourService: tourService}
}

// TourRequest represents a tour create/update payload.
type TourRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description" validate:"required,max=500"`
	Destination  string `json:"destination" validate:"required,max=100"`
	Category     string `json:"category" validate:"required,max=50"`
	Duration     int    `json:"duration" validate:"required,min=1"`
	MaxGroupSize int    `json:"max_group_size" validate:"required,min=1"`
	Price        string `json:"price" validate:"required"`
	ImageURL     string `json:"image_url"`
	Itinerary    string `json:"itinerary"`
	Inclusions   string `json:"inclusions"`
	Exclusions   string `json:"exclusions"`
}

func (r *TourRequest) toInput() (service.CreateTourInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return service.CreateTourInput{}, err
	}
	return service.CreateTourInput{
		Title:        r.Title,
		Description:  r.Description,
		Destination:  r.Destination,
		Category:     r.Category,
		Duration:     r.Duration,
		MaxGroupSize: r.MaxGroupSize,
		Price:        price,
		ImageURL:     r.ImageURL,
		Itinerary:    r.Itinerary,
		Inclusions:   r.Inclusions,
		Exclusions:   r.Exclusions,
	}, nil
}

// List godoc
// @Summary List active tours with optional filters
// @Tags tours
// @Produce json
// @Param destination query string false "Destination substring"
// @Param category query string false "Category"
// @Param min_price query string false "Minimum price"
// @Param max_price query string false "Maximum price"
// @Param min_duration query int false "Minimum duration in days"
// @Param max_duration query int false "Maximum duration in days"
// @Param search query string false "Title/description search"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} model.Tour
// @Router /tours [get]
func (h *TourHandler) List(c echo.Context) error {
	filter := repository.TourFilter{
		Destination: c.QueryParam("destination"),
		Category:    c.QueryParam("category"),
		Search:      c.QueryParam("search"),
	}
	if v := c.QueryParam("min_price"); v != "" {
		if p, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = p
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if p, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = p
		}
	}
	filter.MinDuration, _ = strconv.Atoi(c.QueryParam("min_duration"))
	filter.MaxDuration, _ = strconv.Atoi(c.QueryParam("max_duration"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	filter.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	tours, err := h.tourService.List(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tours)
}

// Get godoc
// @Summary Get a tour by id
// @Tags tours
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} model.Tour
// @Failure 404 {object} errors.ErrorResponse
// @Router /tours/{id} [get]
func (h *TourHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	tour, err := h.tourService.GetByID(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tour)
}

// Create godoc
// @Summary Create a tour
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TourRequest true "Tour data"
// @Success 201 {object} model.Tour
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /tours [post]
func (h *TourHandler) Create(c echo.Context) error {
	actorID, role, err := actorFromContext(c)
	if err != nil {
		return err
	}
	if role != model.RoleAgency {
		return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
			Error: "only agencies can create tours",
			Code:  "FORBIDDEN",
		})
	}

	var req TourRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price",
			Code:  "VALIDATION_ERROR",
		})
	}

	tour, err := h.tourService.Create(c.Request().Context(), actorID, in)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, tour)
}

// Update godoc
// @Summary Update an owned tour
// @Tags tours
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Param request body TourRequest true "Tour data"
// @Success 200 {object} model.Tour
// @Failure 404 {object} errors.ErrorResponse
// @Router /tours/{id} [put]
func (h *TourHandler) Update(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	var req TourRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid price",
			Code:  "VALIDATION_ERROR",
		})
	}

	tour, err := h.tourService.Update(c.Request().Context(), id, actorID, in)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tour)
}

// Deactivate godoc
// @Summary Deactivate an owned tour (logical delete)
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Param id path string true "Tour ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /tours/{id} [delete]
func (h *TourHandler) Deactivate(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	if err := h.tourService.Deactivate(c.Request().Context(), id, actorID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "tour deactivated",
	})
}

// ListMine godoc
// @Summary List the agency's own tours, deactivated included
// @Tags tours
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Tour
// @Router /agency/tours [get]
func (h *TourHandler) ListMine(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	tours, err := h.tourService.ListByAgency(c.Request().Context(), actorID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tours)
}
