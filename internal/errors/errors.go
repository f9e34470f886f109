package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTourNotFound is returned when a tour does not exist.
	ErrTourNotFound = errors.New("tour not found")
	// ErrBookingNotFound is returned when a booking does not exist or is not
	// owned by the caller. The two cases are deliberately not distinguished.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrReviewNotFound is returned when a review does not exist or is not
	// owned by the caller.
	ErrReviewNotFound = errors.New("review not found")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrTourInactive is returned when booking a deactivated tour.
	ErrTourInactive = errors.New("tour is no longer available")
	// ErrCapacityExceeded is returned when the party size exceeds the tour's
	// maximum group size.
	ErrCapacityExceeded = errors.New("number of people exceeds maximum group size")
	// ErrDuplicateReview is returned when a tourist reviews the same tour twice.
	ErrDuplicateReview = errors.New("tour already reviewed")
	// ErrForbidden is returned when a role or ownership check fails.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned for malformed or out-of-range input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidStatus is returned for an unknown booking status value.
	ErrInvalidStatus = errors.New("invalid booking status")
	// ErrInvalidRating is returned when a rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrInvalidDates is returned when booking dates are inconsistent with the
	// tour duration.
	ErrInvalidDates = errors.New("booking dates do not match tour duration")
	// ErrEmailTaken is returned when registering with an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected persistence
// failures collapse into an opaque 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTourNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TOUR_NOT_FOUND")
	case errors.Is(err, ErrBookingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOKING_NOT_FOUND")
	case errors.Is(err, ErrReviewNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REVIEW_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrTourInactive):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TOUR_INACTIVE")
	case errors.Is(err, ErrCapacityExceeded):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CAPACITY_EXCEEDED")
	case errors.Is(err, ErrDuplicateReview):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_REVIEW")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrInvalidDates):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
