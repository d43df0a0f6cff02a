package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidArrivalTime = New(
		"INVALID_ARRIVAL_TIME",
		"Invalid desired arrival timestamp",
		http.StatusBadRequest,
	)

	ErrInvalidMealWindow = New(
		"INVALID_MEAL_WINDOW",
		"Invalid meal window: expected HH:MM times",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrRoutingFailed = New(
		"ROUTING_FAILED",
		"Upstream routing service failed",
		http.StatusBadGateway,
	)

	ErrProfileNotFound = New(
		"PROFILE_NOT_FOUND",
		"Personalization profile not found",
		http.StatusNotFound,
	)

	ErrTripNotFound = New(
		"TRIP_NOT_FOUND",
		"Trip not found",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
