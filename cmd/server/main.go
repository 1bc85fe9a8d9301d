package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"urbancab/internal/app"
	"urbancab/internal/auth"
	"urbancab/internal/config"
	"urbancab/internal/handler"
	"urbancab/internal/queue"
	internalRedis "urbancab/internal/redis"
	"urbancab/internal/repository/postgres"
	"urbancab/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	tripRepo := postgres.NewTripRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	dealerRepo := postgres.NewDealerRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	payoutRepo := postgres.NewPayoutRepository(db)

	// Initialize event publisher.
	var publisher queue.Publisher
	if cfg.Queue.Enabled {
		publisher = queue.NewAMQPPublisher(cfg.Queue.AMQPURL)
	}

	// Initialize services.
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(userRepo, dealerRepo, tokenManager)
	tripService := service.NewTripService(tripRepo)
	payoutService := service.NewPayoutService(payoutRepo, bookingRepo, driverRepo, dealerRepo, publisher)
	bookingService := service.NewBookingService(bookingRepo, tripRepo, payoutService, publisher)
	assignmentService := service.NewAssignmentService(bookingService, driverRepo, lockStore, cacheStore)
	driverService := service.NewDriverService(driverRepo, dealerRepo)
	paymentService := service.NewPaymentService(paymentRepo, bookingService)
	receiptService := service.NewReceiptService(payoutService)
	statsService := service.NewStatsService(userRepo, tripRepo, bookingRepo, paymentRepo, payoutRepo, driverRepo, dealerRepo)

	// Initialize handlers.
	authHandler := handler.NewAuthHandler(authService)
	tripHandler := handler.NewTripHandler(tripService)
	bookingHandler := handler.NewBookingHandler(bookingService, assignmentService)
	driverHandler := handler.NewDriverHandler(driverService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	payoutHandler := handler.NewPayoutHandler(payoutService, receiptService)
	statsHandler := handler.NewStatsHandler(statsService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    authHandler,
		TripHandler:    tripHandler,
		BookingHandler: bookingHandler,
		DriverHandler:  driverHandler,
		PaymentHandler: paymentHandler,
		PayoutHandler:  payoutHandler,
		StatsHandler:   statsHandler,
		TokenManager:   tokenManager,
		DriverRepo:     driverRepo,
		DealerRepo:     dealerRepo,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
