package analytics

import (
	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(router *gin.RouterGroup, controller Controller, dashboardAuth gin.HandlerFunc) {
	analytics := router.Group("/analytics")
	{
		analytics.POST("/session", controller.IssueSession)       // POST /api/v1/analytics/session - Mint a browser session id
		analytics.POST("/pageview", controller.TrackPageView)     // POST /api/v1/analytics/pageview - Record a page view
		analytics.POST("/click", controller.TrackClick)           // POST /api/v1/analytics/click - Record a CTA click
		analytics.POST("/checkout", controller.TrackCheckout)     // POST /api/v1/analytics/checkout - Record a checkout start
		analytics.POST("/conversion", controller.TrackConversion) // POST /api/v1/analytics/conversion - Record a paid order

		analytics.GET("/dashboard", dashboardAuth, controller.GetDashboard) // GET /api/v1/analytics/dashboard?key= - Aggregated metrics
	}
}
