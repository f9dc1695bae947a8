package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"solecare/handlers"
	"solecare/middleware"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm SoleCare"})
	})
}

// RegisterPublicRoutes registers the catalog, availability and payment
// endpoints consumed by the booking funnel.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/services", handlers.GetServicesHandler)
		api.GET("/availability/dates", hb.Availability.GetDates)
		api.GET("/availability/times/:date", hb.Availability.GetTimes)
		api.POST("/create-payment-intent", hb.Payment.CreatePaymentIntent)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking wizard.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.POST("/session", hb.Booking.StartSession)
		bookingGroup.GET("/session/:sessionID", hb.Booking.GetSession)
		bookingGroup.PUT("/session/:sessionID", hb.Booking.UpdateSession)
		bookingGroup.POST("/confirm", hb.Booking.ConfirmBooking)
		bookingGroup.DELETE("/session/:sessionID", hb.Booking.CancelSession)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.POST("/login", hb.Admin.Login)

		protected := adminGroup.Group("")
		protected.Use(middleware.AdminAuthMiddleware())
		protected.POST("/logout", hb.Admin.Logout)
		protected.GET("/orders", hb.Admin.ListOrders)
		protected.PUT("/orders/:id/status", hb.Admin.UpdateOrderStatus)
		protected.GET("/revenue", hb.Admin.Revenue)
		protected.PUT("/availability/:date", hb.Admin.SetAvailabilityDay)
		protected.POST("/availability/:date/times", hb.Admin.AddAvailabilitySlot)
		protected.DELETE("/availability/:date/times/:time", hb.Admin.RemoveAvailabilitySlot)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterPublicRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
