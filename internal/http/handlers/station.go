package handlers

import (
	"strings"

	"github.com/relief-next/internal/http/response"
	"github.com/relief-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateStation 创建站点
func (h *Handler) CreateStation(c *gin.Context) {
	var input service.CreateStationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, response.CodeBadRequest, "invalid station payload")
		return
	}

	station, err := h.StationService.CreateStation(actorID(c), actorRole(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, station)
}

// GetStation 站点详情
func (h *Handler) GetStation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid station id")
		return
	}

	station, err := h.StationService.GetStation(actorID(c), actorRole(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, station)
}

// SearchStations 站点搜索
func (h *Handler) SearchStations(c *gin.Context) {
	page, pageSize := normalizePagination(c, &h.Cfg.Reservation)

	input := service.SearchStationsInput{
		Name:          strings.TrimSpace(c.Query("name")),
		ManagerID:     parseUintQuery(c, "manager_id"),
		HasSupplyType: strings.TrimSpace(c.Query("supply_type")),
		Latitude:      parseFloatQuery(c, "latitude"),
		Longitude:     parseFloatQuery(c, "longitude"),
		RadiusKM:      parseFloatQuery(c, "radius_km"),
		Page:          page,
		PageSize:      pageSize,
	}
	switch c.Query("is_active") {
	case "true":
		active := true
		input.IsActive = &active
	case "false":
		active := false
		input.IsActive = &active
	}

	stations, total, err := h.StationService.SearchStations(actorID(c), actorRole(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, response.NewPageResponse(stations, page, pageSize, total))
}

// UpdateStation 更新站点
func (h *Handler) UpdateStation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid station id")
		return
	}

	var input service.UpdateStationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, response.CodeBadRequest, "invalid station payload")
		return
	}

	station, err := h.StationService.UpdateStation(actorID(c), actorRole(c), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, station)
}

// DeleteStation 删除站点
func (h *Handler) DeleteStation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid station id")
		return
	}

	if err := h.StationService.DeleteStation(actorID(c), actorRole(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessMsg(c, "station deleted", nil)
}

// StationMap 地图视图：启用站点与可用物资
func (h *Handler) StationMap(c *gin.Context) {
	stations, err := h.StationService.MapView(
		parseFloatQuery(c, "latitude"),
		parseFloatQuery(c, "longitude"),
		parseFloatQuery(c, "radius_km"),
		strings.TrimSpace(c.Query("supply_type")),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, stations)
}
