package checkout

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"guiche/internal/shared/utils/response"
)

type Controller interface {
	CreateSession(c *gin.Context)
	GetSession(c *gin.Context)
	SubmitOrder(c *gin.Context)
	MarkPaid(c *gin.Context)
	CopyKey(c *gin.Context)
	ReturnToForm(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	sess, err := ctrl.service.CreateSession(c.Request.Context(), req.Cart, req.EventTitle)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Checkout session created", sess, nil)
}

func (ctrl *controller) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	sess, err := ctrl.service.GetSession(id)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Checkout session retrieved", sess, nil)
}

func (ctrl *controller) SubmitOrder(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	sess, err := ctrl.service.SubmitOrder(c.Request.Context(), id, CustomerInfo(req))
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "PIX order created", sess, nil)
}

func (ctrl *controller) MarkPaid(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	sess, err := ctrl.service.MarkPaid(c.Request.Context(), id)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment confirmed", sess, nil)
}

func (ctrl *controller) CopyKey(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	key, err := ctrl.service.CopyKey(id)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "PIX key copied", key, nil)
}

func (ctrl *controller) ReturnToForm(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	sess, err := ctrl.service.ReturnToForm(id)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Returned to form", sess, nil)
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("sessionId"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid session ID", nil, err.Error())
		return uuid.Nil, false
	}
	return id, true
}

// respondCheckoutError maps the checkout error taxonomy to HTTP: local
// validation and gateway failures both come back as a dismissible
// message with the session still on its previous step.
func respondCheckoutError(c *gin.Context, err error) {
	var validationErr *ValidationError
	var gatewayErr *GatewayError

	switch {
	case errors.As(err, &validationErr):
		response.RespondJSON(c, "error", http.StatusUnprocessableEntity, validationErr.Message, nil, nil)
	case errors.As(err, &gatewayErr):
		response.RespondJSON(c, "error", http.StatusBadGateway, gatewayErr.Message, nil, nil)
	case errors.Is(err, ErrSessionNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, err.Error(), nil, nil)
	case errors.Is(err, ErrSubmitInFlight):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	case errors.Is(err, ErrInvalidTransition):
		response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
	}
}
