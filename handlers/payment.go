package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"solecare/services/booking"
)

// PaymentHandler serves the standalone payment-intent endpoint consumed by
// the hosted payment UI.
type PaymentHandler struct {
	Provider booking.PaymentProvider
	Logger   *zap.Logger
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(provider booking.PaymentProvider, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Provider: provider, Logger: logger}
}

// CreatePaymentIntent accepts {"amount": <integer minor units>} and responds
// with {"clientSecret": "..."}.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var input struct {
		Amount int64 `json:"amount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number of minor units"})
		return
	}

	clientSecret, _, err := h.Provider.CreateIntent(c.Request.Context(), input.Amount)
	if err != nil {
		h.Logger.Error("payment intent creation failed", zap.Int64("amount", input.Amount), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}
