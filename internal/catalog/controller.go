package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"guiche/internal/shared/utils/response"
)

type Controller interface {
	GetAllEvents(c *gin.Context)
	GetEvent(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetAllEvents(c *gin.Context) {
	events, err := ctrl.service.ListEvents()
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Events retrieved successfully", events, nil)
}

func (ctrl *controller) GetEvent(c *gin.Context) {
	id := c.Param("eventId")

	event, err := ctrl.service.GetEvent(id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrEventNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Event retrieved successfully", event, nil)
}
