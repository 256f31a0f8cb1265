package services

import (
	"fmt"
	"net/http"

	"github.com/cinebook/backend/internal/pkg/apierr"
)

const (
	CodeMovieNotFound    = "movie_not_found"
	CodeBookingNotFound  = "booking_not_found"
	CodeNotScheduled     = "not_scheduled"
	CodeDuplicateBooking = "duplicate_booking"
	CodeForbidden        = "forbidden"
	CodeInvalidRequest   = "invalid_request"
)

func errMovieNotFound(movieID string) *apierr.Error {
	return apierr.New(http.StatusNotFound, CodeMovieNotFound,
		fmt.Errorf("movie %q not found", movieID))
}

func errBookingNotFound() *apierr.Error {
	return apierr.New(http.StatusNotFound, CodeBookingNotFound,
		fmt.Errorf("booking not found"))
}

func errNotScheduled(movieID, date string) *apierr.Error {
	return apierr.New(http.StatusUnprocessableEntity, CodeNotScheduled,
		fmt.Errorf("movie %q is not scheduled on %q", movieID, date))
}

func errDuplicateBooking(movieID, date string) *apierr.Error {
	return apierr.New(http.StatusConflict, CodeDuplicateBooking,
		fmt.Errorf("movie %q already booked on %q", movieID, date))
}

func errForbidden() *apierr.Error {
	return apierr.New(http.StatusForbidden, CodeForbidden,
		fmt.Errorf("admin rights required"))
}

func errInvalidRequest(msg string) *apierr.Error {
	return apierr.New(http.StatusBadRequest, CodeInvalidRequest,
		fmt.Errorf("%s", msg))
}
