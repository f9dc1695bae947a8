package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"solecare/services/availability"
)

// AvailabilityHandler serves the calendar lookups used by the schedule step.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetDates lists every future date with at least one open slot.
func (h *AvailabilityHandler) GetDates(c *gin.Context) {
	dates, err := h.Service.AvailableDates(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch availability", "details": err.Error()})
		return
	}
	if dates == nil {
		dates = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// GetTimes lists the open times for one date. An empty list is a valid
// response meaning the day is fully booked.
func (h *AvailabilityHandler) GetTimes(c *gin.Context) {
	times, err := h.Service.AvailableTimes(c.Request.Context(), c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to fetch times", "details": err.Error()})
		return
	}
	if times == nil {
		times = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"times": times})
}
