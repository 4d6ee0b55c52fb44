package handlers

import (
	"github.com/relief-next/internal/http/response"
	"github.com/relief-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListStationInventory 站点库存列表
func (h *Handler) ListStationInventory(c *gin.Context) {
	stationID, ok := parseUintParam(c, "id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid station id")
		return
	}

	items, err := h.InventoryService.ListStationInventory(actorID(c), actorRole(c), stationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, items)
}

// CreateInventoryItem 新增库存条目
func (h *Handler) CreateInventoryItem(c *gin.Context) {
	stationID, ok := parseUintParam(c, "id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid station id")
		return
	}

	var input service.CreateInventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, response.CodeBadRequest, "invalid inventory payload")
		return
	}

	item, err := h.InventoryService.CreateInventoryItem(actorID(c), actorRole(c), stationID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateInventoryItem 更新库存条目
func (h *Handler) UpdateInventoryItem(c *gin.Context) {
	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid inventory item id")
		return
	}

	var input service.UpdateInventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, response.CodeBadRequest, "invalid inventory payload")
		return
	}

	item, err := h.InventoryService.UpdateInventoryItem(actorID(c), actorRole(c), itemID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteInventoryItem 删除库存条目
func (h *Handler) DeleteInventoryItem(c *gin.Context) {
	itemID, ok := parseUintParam(c, "item_id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid inventory item id")
		return
	}

	if err := h.InventoryService.DeleteInventoryItem(actorID(c), actorRole(c), itemID); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessMsg(c, "inventory item deleted", nil)
}

// BulkUpdateInventory 批量更新站点库存
func (h *Handler) BulkUpdateInventory(c *gin.Context) {
	stationID, ok := parseUintParam(c, "id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid station id")
		return
	}

	var input service.BulkUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, response.CodeBadRequest, "invalid bulk update payload")
		return
	}

	result, err := h.InventoryService.BulkUpdateInventory(actorID(c), actorRole(c), stationID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, result)
}
