package handler

import (
	"net/http"

	queryDto "acadly.app/portal/internal/modules/query/dto"
	query "acadly.app/portal/internal/modules/query/service"
	"acadly.app/portal/pkg/response"
	"acadly.app/portal/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QueryHandler struct {
	service query.QueryService
}

func NewQueryHandler(service query.QueryService) *QueryHandler {
	return &QueryHandler{service: service}
}

func (h *QueryHandler) Create(c *gin.Context) {
	var req queryDto.CreateQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *QueryHandler) List(c *gin.Context) {
	queries, err := h.service.List(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, queries)
}

func (h *QueryHandler) Respond(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query id"})
		return
	}

	var req queryDto.RespondQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	profile, err := response.GetProfile(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	updated, err := h.service.Respond(c.Request.Context(), profile, id, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
