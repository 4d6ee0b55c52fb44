package handlers

import (
	"github.com/relief-next/internal/http/response"
	"github.com/relief-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListSupplyTypes 物资类型目录
func (h *Handler) ListSupplyTypes(c *gin.Context) {
	types, err := h.SupplyTypeService.ListSupplyTypes()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, types)
}

// CreateSupplyType 新增物资类型
func (h *Handler) CreateSupplyType(c *gin.Context) {
	var input service.CreateSupplyTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, response.CodeBadRequest, "invalid supply type payload")
		return
	}

	supplyType, err := h.SupplyTypeService.CreateSupplyType(actorRole(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, supplyType)
}
