package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	bookingRepo "maidly/database/repository/booking"
	"maidly/models"
	"maidly/services/booking"
	"maidly/utils"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Engine   booking.Engine
	Bookings bookingRepo.BookingRepository
	Logger   *zap.Logger
}

func NewBookingHandler(engine booking.Engine, repo bookingRepo.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Engine: engine, Bookings: repo, Logger: logger}
}

// CreateBooking handles POST /api/bookings. An optional Idempotency-Key
// header makes retries safe.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.IdempotencyKey = c.GetHeader("Idempotency-Key")

	created, err := h.Engine.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Bookings.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch booking", err.Error())
		return
	}
	if b == nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListCustomerBookings handles GET /api/customers/:id/bookings.
func (h *BookingHandler) ListCustomerBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListByCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// AssignCleaner handles POST /api/bookings/:id/assign.
func (h *BookingHandler) AssignCleaner(c *gin.Context) {
	var input models.AssignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.BookingID = c.Param("id")

	result, err := h.Engine.AssignCleaner(c.Request.Context(), input)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ClockIn handles POST /api/bookings/:id/clock-in.
func (h *BookingHandler) ClockIn(c *gin.Context) {
	b, err := h.Engine.ClockIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ClockOut handles POST /api/bookings/:id/clock-out.
func (h *BookingHandler) ClockOut(c *gin.Context) {
	b, err := h.Engine.ClockOut(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Engine.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// respondEngineError maps the engine's error taxonomy onto HTTP statuses.
func respondEngineError(c *gin.Context, err error) {
	var be *booking.BookingError
	if !errors.As(err, &be) {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
		return
	}

	var status int
	switch be.Code {
	case booking.CodeOutOfServiceArea, booking.CodeMissingSchedule, booking.CodeInvalidPromoCode:
		status = http.StatusBadRequest
	case booking.CodeSlotUnavailable, booking.CodeCleanerUnavailable, booking.CodeInvalidStateTransition:
		status = http.StatusConflict
	case booking.CodeBookingNotFound, booking.CodeCleanerNotFound:
		status = http.StatusNotFound
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
		return
	}

	c.JSON(status, gin.H{"error": be.Message, "code": be.Code})
}
