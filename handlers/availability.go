package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"maidly/services/availability"
	"maidly/utils"
)

// AvailabilityHandler exposes capacity queries.
type AvailabilityHandler struct {
	Svc *availability.Service
}

func NewAvailabilityHandler(svc *availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc}
}

// Dates handles GET /api/availability/dates.
func (h *AvailabilityHandler) Dates(c *gin.Context) {
	dates, err := h.Svc.AvailableDates(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to enumerate available dates", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// Slot handles GET /api/availability/slot?date=...&time_slot=...
func (h *AvailabilityHandler) Slot(c *gin.Context) {
	date := c.Query("date")
	timeSlot := c.Query("time_slot")
	if date == "" || timeSlot == "" {
		utils.JSONError(c, http.StatusBadRequest, "date and time_slot are required", "")
		return
	}

	open, err := h.Svc.HasSlotCapacity(c.Request.Context(), date, timeSlot)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to check slot capacity", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "time_slot": timeSlot, "available": open})
}
