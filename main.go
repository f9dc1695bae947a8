// File: solecare/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solecare/config"
	"solecare/database"
	adminRepoPkg "solecare/database/repository/admin"
	availabilityRepoPkg "solecare/database/repository/availability"
	orderRepoPkg "solecare/database/repository/order"
	"solecare/handlers"
	"solecare/middleware"
	"solecare/routes"
	adminSvc "solecare/services/admin"
	"solecare/services/availability"
	"solecare/services/booking"
	"solecare/services/mailer"
	"solecare/services/outbox"
	"solecare/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	orderRepo := orderRepoPkg.NewMongoOrderRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	adminRepo := adminRepoPkg.NewMongoAdminRepo()

	// Bootstrap the first back-office account so login works on a fresh
	// deployment. The hash is bcrypt, generated by deployment tooling.
	if seedEmail := config.AppConfig.AdminSeedEmail; seedEmail != "" {
		if err := adminSvc.SeedAdmin(context.Background(), adminRepo,
			seedEmail, config.AppConfig.AdminSeedName, config.AppConfig.AdminSeedPasswordHash); err != nil {
			logger.Sugar().Errorf("main: failed to seed admin account: %v", err)
		}
	}

	// services.
	availabilityService := &availability.DefaultAvailabilityService{
		Repo: availabilityRepo,
	}

	outboxClient := outbox.NewClient()
	defer outboxClient.Close()

	paymentProvider := booking.NewStripePaymentProvider()
	bookingService := &booking.DefaultBookingSessionService{
		Store:        booking.NewRedisSessionStore(utils.GetSessionClient()),
		Payment:      paymentProvider,
		Availability: availabilityService,
		Orders:       orderRepo,
		Outbox:       outboxClient,
		MaxQuantity:  config.AppConfig.MaxBookingQuantity,
	}

	adminService := &adminSvc.DefaultAdminService{
		Repo:   adminRepo,
		Orders: orderRepo,
	}

	// Outbox worker draining post-payment side effects.
	worker := &outbox.Worker{
		Orders:       orderRepo,
		Availability: availabilityRepo,
		Mailer:       mailer.NewSMTPMailer(),
		Outbox:       outboxClient,
	}
	worker.Run()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Booking:      handlers.NewBookingHandler(bookingService, logger),
		Payment:      handlers.NewPaymentHandler(paymentProvider, logger),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Admin:        handlers.NewAdminHandler(adminService, availabilityService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
