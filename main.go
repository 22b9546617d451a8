// File: maidly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"maidly/config"
	"maidly/cron"
	"maidly/database"
	bookingRepoPkg "maidly/database/repository/booking"
	cleanerRepoPkg "maidly/database/repository/cleaner"
	promoRepoPkg "maidly/database/repository/promo"
	serviceRepoPkg "maidly/database/repository/service"
	timeslotRepoPkg "maidly/database/repository/timeslot"
	"maidly/handlers"
	"maidly/middleware"
	"maidly/routes"
	"maidly/services/availability"
	"maidly/services/booking"
	"maidly/services/calendar"
	"maidly/services/notification"
	"maidly/services/payment"
	"maidly/services/pricing"
	"maidly/services/promo"
	"maidly/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	if config.AppConfig.FirebaseCredentialsFile != "" {
		utils.FirebaseInit()
	}
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	cleanerRepo := cleanerRepoPkg.NewMongoCleanerRepo()
	promoRepo := promoRepoPkg.NewMongoPromoRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	timeslotRepo := timeslotRepoPkg.NewMongoTimeSlotRepo()

	for name, ensure := range map[string]func() error{
		"bookings":  bookingRepo.EnsureIndexes,
		"cleaners":  cleanerRepo.EnsureIndexes,
		"promos":    promoRepo.EnsureIndexes,
		"services":  serviceRepo.EnsureIndexes,
		"timeslots": timeslotRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// External collaborators.
	var calendarPort calendar.Port
	if config.AppConfig.GoogleCredentialsFile != "" {
		gc, err := calendar.NewGoogleCalendar(context.Background(), config.AppConfig.GoogleCredentialsFile)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize google calendar client: %v", err)
		}
		calendarPort = gc
	}

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer taskClient.Close()

	// services.
	availabilitySvc := &availability.Service{
		Slots:       timeslotRepo,
		Bookings:    bookingRepo,
		Calendar:    calendarPort,
		Cache:       utils.GetCacheClient(),
		TimeSlots:   config.AppConfig.TimeSlots,
		HorizonDays: config.AppConfig.AvailabilityHorizon,
	}

	calculator := pricing.NewCalculator(pricing.DefaultConfig())
	validator := promo.NewValidator(promoRepo)
	notificationSvc := notification.NewDefaultNotificationService()
	paymentProcessor := payment.NewStripeProcessor(logger)

	engine := &booking.DefaultEngine{
		Bookings:            bookingRepo,
		Cleaners:            cleanerRepo,
		Services:            serviceRepo,
		Slots:               timeslotRepo,
		Availability:        availabilitySvc,
		Pricing:             calculator,
		Promo:               validator,
		Calendar:            calendarPort,
		Payments:            paymentProcessor,
		Notifier:            notificationSvc,
		TaskClient:          taskClient,
		ServiceAreaZips:     config.AppConfig.ServiceAreaZips,
		DefaultSlotCapacity: config.AppConfig.DefaultSlotCapacity,
	}

	// handlers.
	bookingHandler := handlers.NewBookingHandler(engine, bookingRepo, logger)
	pricingHandler := handlers.NewPricingHandler(engine)
	promoHandler := handlers.NewPromoHandler(validator, promoRepo)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilitySvc)
	cleanerHandler := handlers.NewCleanerHandler(cleanerRepo)
	serviceHandler := handlers.NewServiceHandler(serviceRepo)

	routes.RegisterRoutes(router, bookingHandler, pricingHandler, promoHandler,
		availabilityHandler, cleanerHandler, serviceHandler)

	// Background reminder worker.
	cron.InitReminderWorker(notificationSvc, cleanerRepo)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
}
