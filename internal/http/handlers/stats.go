package handlers

import (
	"github.com/relief-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// StatsOverview 平台总览统计
func (h *Handler) StatsOverview(c *gin.Context) {
	overview, err := h.StatsService.GetOverview(c.Request.Context(), actorRole(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, overview)
}
