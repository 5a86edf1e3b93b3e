package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alquileresmvp/rental-system/internal/api/handler"
	"github.com/alquileresmvp/rental-system/internal/api/middleware"
	"github.com/alquileresmvp/rental-system/internal/core/service"
	"github.com/alquileresmvp/rental-system/internal/infrastructure/cache"
	rentalmongo "github.com/alquileresmvp/rental-system/internal/infrastructure/db/mongo"
	rentalredis "github.com/alquileresmvp/rental-system/internal/infrastructure/db/redis"
	"github.com/alquileresmvp/rental-system/internal/infrastructure/http/handlers"
)

// Options carries the router's external dependencies.
type Options struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	ListingTTL time.Duration
	Events     service.BookingEvents
	Logger     zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rental"))

	// --- Repositories ---
	userRepo := rentalmongo.NewUserRepository(opts.Mongo)
	propertyRepo := rentalmongo.NewPropertyRepository(opts.Mongo)
	bookingRepo := rentalmongo.NewBookingRepository(opts.Mongo)
	blockRepo := rentalmongo.NewBlockedRangeRepository(opts.Mongo)

	// --- Core services ---
	identity := service.NewIdentityService(userRepo, opts.Logger)
	guard := service.NewOwnershipGuard(identity, propertyRepo)
	availability := service.NewAvailabilityService(bookingRepo, blockRepo, opts.Logger)
	propertySvc := service.NewPropertyService(identity, guard, propertyRepo, blockRepo, bookingRepo, opts.Logger)
	locker := rentalredis.NewPropertyLock(opts.Redis)
	bookingSvc := service.NewBookingService(identity, propertyRepo, bookingRepo, availability, locker, opts.Events, opts.Logger)

	// --- Handlers ---
	listingCache := cache.NewListingCache(opts.ListingTTL)
	propertyHandler := handler.NewPropertyHandler(propertySvc, listingCache)
	bookingHandler := handler.NewBookingHandler(bookingSvc, availability, propertySvc)
	auth := middleware.Auth(opts.JWTSecret)

	// The public read surface is keyed by slug under /listings; mutations
	// are keyed by id under /properties. Keeping the trees separate also
	// keeps Echo's path parameters unambiguous.
	e.GET("/v1/listings", propertyHandler.List)
	e.GET("/v1/listings/:slug", propertyHandler.GetBySlug)
	e.GET("/v1/listings/:slug/availability", bookingHandler.Availability)

	// --- Authenticated routes ---
	authed := e.Group("/v1", auth)
	authed.POST("/properties", propertyHandler.Create)
	authed.PUT("/properties/:id", propertyHandler.Update)
	authed.DELETE("/properties/:id", propertyHandler.Delete)
	authed.POST("/properties/:id/blocks", propertyHandler.AddBlock)
	authed.DELETE("/properties/:id/blocks/:block_id", propertyHandler.RemoveBlock)
	authed.POST("/bookings", bookingHandler.Create)
	authed.POST("/bookings/:id/cancel", bookingHandler.Cancel)
	authed.GET("/trips", bookingHandler.ListTrips)
	authed.GET("/host/properties", propertyHandler.ListMine)
	authed.GET("/host/bookings", bookingHandler.ListHostBookings)

	// --- Probes and metrics ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(opts.Mongo, opts.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
