package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"tourhub/internal/auth"
	"tourhub/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	tourHandler *handler.TourHandler,
	bookingHandler *handler.BookingHandler,
	reviewHandler *handler.ReviewHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Public catalog routes
	api.GET("/tours", tourHandler.List)
	api.GET("/tours/:id", tourHandler.Get)
	api.GET("/tours/:id/reviews", reviewHandler.ListByTour)
	api.GET("/tours/:id/rating", reviewHandler.TourRating)

	// Secured routes (require JWT authentication). The token is parsed into
	// typed claims so handlers get the acting user id and role directly.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
	}))

	// Profile routes
	secured.GET("/me", userHandler.Me)
	secured.PUT("/me", userHandler.UpdateMe)

	// Tour management routes
	secured.POST("/tours", tourHandler.Create)
	secured.PUT("/tours/:id", tourHandler.Update)
	secured.DELETE("/tours/:id", tourHandler.Deactivate)
	secured.GET("/agency/tours", tourHandler.ListMine)

	// Booking routes
	secured.POST("/bookings", bookingHandler.Create)
	secured.GET("/bookings", bookingHandler.ListMine)
	secured.GET("/bookings/:id", bookingHandler.Get)
	secured.PUT("/bookings/:id/status", bookingHandler.UpdateStatus)
	secured.PUT("/bookings/:id/cancel", bookingHandler.Cancel)
	secured.GET("/agency/bookings", bookingHandler.ListAgency)
	secured.GET("/agency/bookings/recent", bookingHandler.ListRecentAgency)
	secured.GET("/agency/stats", bookingHandler.Stats)

	// Review routes
	secured.POST("/reviews", reviewHandler.Create)
	secured.GET("/reviews", reviewHandler.ListMine)
	secured.PUT("/reviews/:id", reviewHandler.Update)
	secured.DELETE("/reviews/:id", reviewHandler.Delete)
	secured.GET("/agency/rating", reviewHandler.AgencyRating)
	secured.GET("/agency/reviews/recent", reviewHandler.ListRecentAgency)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
