package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tourhub/internal/errors"
	"tourhub/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a profile update payload.
type UpdateProfileRequest struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Phone       string `json:"phone" validate:"max=20"`
	AgencyName  string `json:"agency_name" validate:"max=200"`
	Description string `json:"description" validate:"max=1000"`
	Services    string `json:"services" validate:"max=1000"`
}

// Me godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Router /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetProfile(c.Request().Context(), actorID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update the authenticated user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile data"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	actorID, _, err := actorFromContext(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), actorID, service.UpdateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		AgencyName:  req.AgencyName,
		Description: req.Description,
		Services:    req.Services,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}
