package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tourhub/internal/auth"
	"tourhub/internal/model"
)

// actorFromContext extracts the authenticated user's id and role from the
// JWT claims the middleware stored on the context. The pair is passed
// explicitly into every service call.
func actorFromContext(c echo.Context) (uuid.UUID, model.Role, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, err := claims.UserUUID()
	if err != nil {
		return uuid.Nil, "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return id, claims.Role, nil
}
