package handler

import (
	"net/http"

	insight "acadly.app/portal/internal/modules/insight/service"
	"acadly.app/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	service insight.InsightService
}

func NewInsightHandler(service insight.InsightService) *InsightHandler {
	return &InsightHandler{service: service}
}

func (h *InsightHandler) Insights(c *gin.Context) {
	insights, err := h.service.Insights(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}
