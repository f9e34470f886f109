package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tourhub/internal/errors"
	"tourhub/internal/model"
	"tourhub/internal/service"
)

// ReviewHandler handles review and rating endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest represents a review creation payload.
type CreateReviewRequest struct {
	TourID  string `json:"tour_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required"`
	Comment string `json:"comment" validate:"max=1000"`
}

// UpdateReviewRequest represents a review update payload.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required"`
	Comment string `json:"comment" validate:"max=1000"`
}

// Create godoc
// @Summary Review a tour (one review per tourist per tour)
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateReviewRequest true "Review data"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	actorID, role, err := actorFromContext(c)
	if err != nil {
		return err
	}
	if role != model.RoleTourist {
		return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
			Error: "only tourists can review tours",
			Code:  "FORBIDDEN",
		})
	}

	var req CreateReviewRequest
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

	review, err := h.reviewService.Create(c.Request().Context(), actorID, tourID, req.Rating, req.Comment)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, review)
}

// Update godoc
// @Summary Update an own review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body UpdateReviewRequest true "Review data"
// @Success 200 {object} model.Review
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review id")
	}

	var req UpdateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review, err := h.reviewService.Update(c.Request().Context(), id, actorID, req.Rating, req.Comment)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, review)
}

// Delete godoc
// @Summary Delete an own review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review id")
	}

	if err := h.reviewService.Delete(c.Request().Context(), id, actorID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "review deleted",
	})
}

// ListMine godoc
// @Summary List the tourist's own reviews
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Review
// @Router /reviews [get]
func (h *ReviewHandler) ListMine(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	reviews, err := h.reviewService.ListByTourist(c.Request().Context(), actorID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reviews)
}

// ListByTour godoc
// @Summary List a tour's reviews, newest first
// @Tags reviews
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {array} model.Review
// @Router /tours/{id}/reviews [get]
func (h *ReviewHandler) ListByTour(c echo.Context) error {
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	reviews, err := h.reviewService.ListByTour(c.Request().Context(), tourID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reviews)
}

// TourRating godoc
// @Summary Rating aggregate for a tour
// @Tags reviews
// @Produce json
// @Param id path string true "Tour ID"
// @Success 200 {object} service.TourRating
// @Router /tours/{id}/rating [get]
func (h *ReviewHandler) TourRating(c echo.Context) error {
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid tour id")
	}

	rating, err := h.reviewService.TourRating(c.Request().Context(), tourID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rating)
}

// AgencyRating godoc
// @Summary Rating aggregate over all of the agency's tours
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AgencyRating
// @Router /agency/rating [get]
func (h *ReviewHandler) AgencyRating(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	rating, err := h.reviewService.AgencyRating(c.Request().Context(), actorID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rating)
}

// ListRecentAgency godoc
// @Summary List the most recent reviews on the agency's tours
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {array} model.Review
// @Router /agency/reviews/recent [get]
func (h *ReviewHandler) ListRecentAgency(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 10
	}

	reviews, err := h.reviewService.ListRecentByAgency(c.Request().Context(), actorID, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reviews)
}
