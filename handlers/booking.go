package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solecare/services/booking"
)

// BookingHandler exposes the wizard session endpoints.
type BookingHandler struct {
	Service booking.BookingSessionService
	Logger  *zap.Logger
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc booking.BookingSessionService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// StartSession creates a new wizard session at step zero.
func (h *BookingHandler) StartSession(c *gin.Context) {
	session, err := h.Service.StartSession(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start booking session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetSession returns the current wizard state.
func (h *BookingHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		if errors.Is(err, booking.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// UpdateSession patches booking fields and optionally advances or retreats.
func (h *BookingHandler) UpdateSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input booking.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.UpdateSession(c.Request.Context(), sessionID, input)
	if err != nil {
		var vErr *booking.ValidationError
		var pErr *booking.PaymentError
		switch {
		case errors.Is(err, booking.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &vErr):
			// The patched draft is returned alongside the field errors so the
			// customer's input is never lost.
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"fields":  vErr.Fields,
				"session": session,
			})
		case errors.As(err, &pErr):
			h.Logger.Error("payment intent creation failed", zap.String("sessionID", sessionID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{
				"error":   "Could not initialize payment. Please try again.",
				"session": session,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking session", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// ConfirmBooking finalizes the booking once the hosted payment UI reports
// success.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var input struct {
		SessionID string `json:"sessionID" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	order, err := h.Service.Confirm(c.Request.Context(), input.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, booking.ErrPaymentNotSettled):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment has not completed. Please retry the payment."})
		case errors.Is(err, booking.ErrOrderNotSaved):
			h.Logger.Error("order not saved after payment", zap.String("sessionID", input.SessionID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Your payment was successful, but we failed to save your booking. Please contact support.",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "booking confirmation failed", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelSession discards a wizard session.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
