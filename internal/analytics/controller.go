package analytics

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"guiche/internal/shared/utils/response"
	"guiche/pkg/logger"
)

type Controller interface {
	TrackPageView(c *gin.Context)
	TrackClick(c *gin.Context)
	TrackCheckout(c *gin.Context)
	TrackConversion(c *gin.Context)
	IssueSession(c *gin.Context)
	GetDashboard(c *gin.Context)
}

type controller struct {
	service Service
	logger  *logger.Logger
}

func NewController(service Service) Controller {
	return &controller{service: service, logger: logger.GetDefault()}
}

// Tracking endpoints always answer 202 once the payload binds. The
// storefront fires them with sendBeacon and never reads the body, so a
// failed insert is logged here instead of surfaced.

func (ctrl *controller) TrackPageView(c *gin.Context) {
	var req PageViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.service.TrackPageView(c.Request.Context(), req); err != nil {
		ctrl.logger.Warn("failed to record page view", slog.Any("error", err))
	}
	response.RespondJSON(c, "success", http.StatusAccepted, "Recorded", nil, nil)
}

func (ctrl *controller) TrackClick(c *gin.Context) {
	var req ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.service.TrackClick(c.Request.Context(), req); err != nil {
		ctrl.logger.Warn("failed to record click", slog.Any("error", err))
	}
	response.RespondJSON(c, "success", http.StatusAccepted, "Recorded", nil, nil)
}

func (ctrl *controller) TrackCheckout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.service.TrackCheckout(c.Request.Context(), req); err != nil {
		ctrl.logger.Warn("failed to record checkout", slog.Any("error", err))
	}
	response.RespondJSON(c, "success", http.StatusAccepted, "Recorded", nil, nil)
}

func (ctrl *controller) TrackConversion(c *gin.Context) {
	var req ConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.service.TrackConversion(c.Request.Context(), req); err != nil {
		ctrl.logger.Warn("failed to record conversion", slog.Any("error", err))
	}
	response.RespondJSON(c, "success", http.StatusAccepted, "Recorded", nil, nil)
}

func (ctrl *controller) IssueSession(c *gin.Context) {
	sessionID, err := ctrl.service.IssueSession(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to issue session", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Session issued", gin.H{"session_id": sessionID}, nil)
}

func (ctrl *controller) GetDashboard(c *gin.Context) {
	data, err := ctrl.service.GetDashboard(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to build dashboard", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Dashboard retrieved", data, nil)
}
