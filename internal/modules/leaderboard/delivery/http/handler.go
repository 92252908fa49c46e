package handler

import (
	"net/http"

	leaderboard "acadly.app/portal/internal/modules/leaderboard/service"
	"acadly.app/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

const leaderboardLimit = 50

type LeaderboardHandler struct {
	service leaderboard.LeaderboardService
}

func NewLeaderboardHandler(service leaderboard.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) Top(c *gin.Context) {
	entries, err := h.service.Top(c.Request.Context(), leaderboardLimit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
