// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"guiche/internal/analytics"
	"guiche/internal/catalog"
	"guiche/internal/checkout"
	"guiche/internal/payment"
	"guiche/internal/shared/config"
	"guiche/internal/shared/database"
	"guiche/internal/shared/middleware"
	"guiche/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	notifier     checkout.Notifier

	checkoutStore   *checkout.Store
	checkoutService checkout.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, notifier checkout.Notifier) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cacheService,
		notifier:     notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) (err error) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupCatalogRoutes(api)

		// Analytics must come before checkout: the checkout service
		// reports into the analytics tracker.
		tracker := r.setupAnalyticsRoutes(api)

		if err := r.setupCheckoutRoutes(api, tracker); err != nil {
			return err
		}
	}
	return nil
}

// CheckoutService exposes the checkout service for graceful shutdown.
func (r *Router) CheckoutService() checkout.Service {
	return r.checkoutService
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "guiche-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "guiche-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupCatalogRoutes configures public event browsing routes
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogRepo := catalog.NewRepository(r.db.GetPostgreSQL())
	catalogService := catalog.NewService(catalogRepo)
	if r.cacheService != nil {
		catalogService.SetCacheService(r.cacheService)
	}
	catalogController := catalog.NewController(catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController)
}

// setupAnalyticsRoutes configures tracking and dashboard routes and
// returns the tracker for the checkout service.
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) checkout.Tracker {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo)
	if r.cacheService != nil {
		analyticsService.SetCacheService(r.cacheService)
	}
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController, middleware.DashboardKeyAuth(r.config))
	return analyticsService
}

// setupCheckoutRoutes configures the checkout state machine routes
func (r *Router) setupCheckoutRoutes(rg *gin.RouterGroup, tracker checkout.Tracker) error {
	gateway, err := payment.NewClient(payment.Config{
		BackendURL: r.config.Payment.BackendURL,
		Timeout:    r.config.Payment.Timeout,
		MockMode:   r.config.Payment.MockMode,
		MockExpiry: r.config.Payment.MockExpiry,
	})
	if err != nil {
		return err
	}

	r.checkoutStore = checkout.NewStore(r.config.Checkout.SessionTTL, r.config.Checkout.SweepInterval)
	r.checkoutService = checkout.NewService(r.checkoutStore, gateway, tracker, r.notifier, checkout.Options{
		CopiedResetAfter: r.config.Checkout.CopiedResetAfter,
	})
	checkoutController := checkout.NewController(r.checkoutService)

	checkout.SetupCheckoutRoutes(rg, checkoutController)
	return nil
}
