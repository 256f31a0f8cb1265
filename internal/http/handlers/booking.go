package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinebook/backend/internal/http/response"
	"github.com/cinebook/backend/internal/pkg/apierr"
	"github.com/cinebook/backend/internal/services"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// respondServiceError maps engine errors onto their HTTP status; anything
// that is not an apierr is a plain 500.
func respondServiceError(c *gin.Context, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		response.RespondError(c, ae.Status, ae.Code, ae)
		return
	}
	response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
}

// GET /api/bookings?userid=<requester>
func (h *BookingHandler) ListAll(c *gin.Context) {
	requesterID := c.Query("userid")
	aggregates, err := h.bookings.ListAll(c.Request.Context(), requesterID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"bookings": aggregates})
}

// GET /api/users/:userid/bookings
func (h *BookingHandler) ByUser(c *gin.Context) {
	agg, err := h.bookings.ByUser(c.Request.Context(), c.Param("userid"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	// No bookings is a valid empty answer, not an error.
	if agg == nil {
		response.RespondOK(c, nil)
		return
	}
	response.RespondOK(c, agg)
}

// GET /api/users/:userid/bookings/detailed
func (h *BookingHandler) DetailedByUser(c *gin.Context) {
	detailed, err := h.bookings.DetailedByUser(c.Request.Context(), c.Param("userid"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if detailed == nil {
		response.RespondOK(c, nil)
		return
	}
	response.RespondOK(c, detailed)
}

// POST /api/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req struct {
		UserID  string `json:"userid" binding:"required"`
		MovieID string `json:"movieid" binding:"required"`
		Date    string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	confirmation, err := h.bookings.Create(c.Request.Context(), req.UserID, req.MovieID, req.Date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"message": "booking created",
		"booking": confirmation,
	})
}

// DELETE /api/users/:userid/bookings/:date/:movieid
func (h *BookingHandler) Delete(c *gin.Context) {
	err := h.bookings.Delete(c.Request.Context(), c.Param("userid"), c.Param("movieid"), c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "booking deleted"})
}

// DELETE /api/users/:userid/bookings
func (h *BookingHandler) DeleteAll(c *gin.Context) {
	if err := h.bookings.DeleteAll(c.Request.Context(), c.Param("userid")); err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "all bookings deleted"})
}
