package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"urbancab/internal/auth"
	"urbancab/internal/handler"
	"urbancab/internal/middleware"
	"urbancab/internal/repository"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	TripHandler    *handler.TripHandler
	BookingHandler *handler.BookingHandler
	DriverHandler  *handler.DriverHandler
	PaymentHandler *handler.PaymentHandler
	PayoutHandler  *handler.PayoutHandler
	StatsHandler   *handler.StatsHandler
	TokenManager   *auth.TokenManager
	DriverRepo     repository.DriverRepository
	DealerRepo     repository.DealerRepository
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authenticated := middleware.AuthMiddleware(deps.TokenManager, deps.DriverRepo, deps.DealerRepo)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", deps.AuthHandler.Register)
			authGroup.POST("/login", deps.AuthHandler.Login)
			authGroup.GET("/me", authenticated, deps.AuthHandler.Me)
		}

		// Trip routes.
		trips := v1.Group("/trips", authenticated)
		{
			trips.POST("", deps.TripHandler.CreateTrip)
			trips.GET("", deps.TripHandler.ListTrips)
			trips.GET("/:id", deps.TripHandler.GetTrip)
			trips.PATCH("/:id/status", deps.TripHandler.UpdateTripStatus)
		}

		// Booking routes.
		bookings := v1.Group("/bookings", authenticated)
		{
			bookings.POST("", deps.BookingHandler.CreateBooking)
			bookings.GET("", deps.BookingHandler.ListBookings)
			bookings.GET("/:id", deps.BookingHandler.GetBooking)
			bookings.PATCH("/:id/status", deps.BookingHandler.UpdateStatus)
			bookings.POST("/:id/accept", deps.BookingHandler.AcceptBooking)
			bookings.POST("/:id/assign", deps.BookingHandler.AssignDriver)
			bookings.PATCH("/:id/payment", deps.BookingHandler.MarkPayment)
		}

		// Driver routes.
		drivers := v1.Group("/drivers", authenticated)
		{
			drivers.POST("", deps.DriverHandler.CreateProfile)
			drivers.GET("", deps.DriverHandler.ListAvailable)
			drivers.GET("/me", deps.DriverHandler.GetProfile)
		}

		// Dealer routes.
		dealers := v1.Group("/dealers", authenticated)
		{
			dealers.GET("/me/drivers", deps.DriverHandler.ListFleet)
		}

		// Payment ledger routes.
		payments := v1.Group("/payments", authenticated)
		{
			payments.POST("", deps.PaymentHandler.RecordPayment)
			payments.GET("", deps.PaymentHandler.ListPayments)
		}

		// Payout routes.
		payouts := v1.Group("/payouts", authenticated)
		{
			payouts.GET("", deps.PayoutHandler.ListPayouts)
			payouts.GET("/:id", deps.PayoutHandler.GetPayout)
			payouts.GET("/:id/statement", deps.PayoutHandler.GetStatement)
			payouts.POST("/:id/process", deps.PayoutHandler.ProcessPayout)
		}

		// Dashboard.
		v1.GET("/dashboard", authenticated, deps.StatsHandler.Dashboard)
	}

	return router
}
