package checkout

import (
	"github.com/gin-gonic/gin"
)

func SetupCheckoutRoutes(router *gin.RouterGroup, controller Controller) {
	sessions := router.Group("/checkout/sessions")
	{
		sessions.POST("", controller.CreateSession)                 // POST /api/v1/checkout/sessions - Start checkout with a cart
		sessions.GET("/:sessionId", controller.GetSession)          // GET  /api/v1/checkout/sessions/:sessionId - Current step + countdown
		sessions.POST("/:sessionId/submit", controller.SubmitOrder) // POST /api/v1/checkout/sessions/:sessionId/submit - Form -> PIX
		sessions.POST("/:sessionId/paid", controller.MarkPaid)      // POST /api/v1/checkout/sessions/:sessionId/paid - Manual confirmation
		sessions.POST("/:sessionId/copy-key", controller.CopyKey)   // POST /api/v1/checkout/sessions/:sessionId/copy-key - Copy PIX key
		sessions.POST("/:sessionId/back", controller.ReturnToForm)  // POST /api/v1/checkout/sessions/:sessionId/back - PIX -> form
	}
}
