package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	orderRepo "solecare/database/repository/order"
	"solecare/middleware"
	"solecare/services/admin"
	"solecare/services/availability"
)

// AdminHandler exposes the back-office: login/logout, order management,
// revenue and availability editing.
type AdminHandler struct {
	Service      admin.AdminService
	Availability availability.AvailabilityService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc admin.AdminService, avail availability.AvailabilityService) *AdminHandler {
	return &AdminHandler{Service: svc, Availability: avail}
}

// Login verifies credentials and returns a role-claimed token.
func (h *AdminHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	resp, err := h.Service.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the presented token's session.
func (h *AdminHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxAuthToken)
	if err := h.Service.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// ListOrders supports ?status= filtering and ?sort=desc|asc by creation time.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	filter := orderRepo.ListFilter{
		Status:   c.Query("status"),
		SortDesc: c.DefaultQuery("sort", "desc") != "asc",
	}
	orders, err := h.Service.ListOrders(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to list orders", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// UpdateOrderStatus sets an order's status.
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Service.UpdateOrderStatus(c.Request.Context(), c.Param("id"), input.Status); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update order", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// Revenue returns per-month realized revenue.
func (h *AdminHandler) Revenue(c *gin.Context) {
	buckets, err := h.Service.Revenue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute revenue", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"revenue": buckets})
}

// SetAvailabilityDay replaces a day's open times.
func (h *AdminHandler) SetAvailabilityDay(c *gin.Context) {
	var input struct {
		Times []string `json:"times"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Availability.SetDay(c.Request.Context(), c.Param("date"), input.Times); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to set availability", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// AddAvailabilitySlot opens one (date, time) slot.
func (h *AdminHandler) AddAvailabilitySlot(c *gin.Context) {
	var input struct {
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Availability.AddSlot(c.Request.Context(), c.Param("date"), input.Time); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to add slot", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "added"})
}

// RemoveAvailabilitySlot closes one (date, time) slot.
func (h *AdminHandler) RemoveAvailabilitySlot(c *gin.Context) {
	if err := h.Availability.RemoveSlot(c.Request.Context(), c.Param("date"), c.Param("time")); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "slot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove slot", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
