package catalog

import (
	"github.com/gin-gonic/gin"
)

func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller) {
	// Public routes - the storefront browses without authentication
	events := router.Group("/events")
	{
		events.GET("", controller.GetAllEvents)      // GET /api/v1/events - Browse all events
		events.GET("/:eventId", controller.GetEvent) // GET /api/v1/events/:eventId - Event details with tiers
	}
}
