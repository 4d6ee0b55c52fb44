package handlers

import (
	"strings"

	"github.com/relief-next/internal/http/response"
	"github.com/relief-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReservation 创建预约
func (h *Handler) CreateReservation(c *gin.Context) {
	var input service.CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, response.CodeBadRequest, "invalid reservation payload")
		return
	}

	view, err := h.ReservationService.CreateReservation(actorID(c), actorRole(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// GetReservation 预约详情
func (h *Handler) GetReservation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid reservation id")
		return
	}

	view, err := h.ReservationService.GetReservation(actorID(c), actorRole(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

// ListReservations 预约列表
func (h *Handler) ListReservations(c *gin.Context) {
	page, pageSize := normalizePagination(c, &h.Cfg.Reservation)

	input := service.ReservationListInput{
		StationID: parseUintQuery(c, "station_id"),
		Status:    strings.TrimSpace(c.Query("status")),
		TaskID:    parseUintQuery(c, "task_id"),
		NeedID:    parseUintQuery(c, "need_id"),
		Page:      page,
		PageSize:  pageSize,
	}

	views, total, err := h.ReservationService.ListReservations(actorID(c), actorRole(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, response.NewPageResponse(views, page, pageSize, total))
}

// UpdateReservation 编辑待处理预约
func (h *Handler) UpdateReservation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid reservation id")
		return
	}

	var input service.UpdateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, response.CodeBadRequest, "invalid reservation payload")
		return
	}

	view, err := h.ReservationService.UpdateReservation(actorID(c), actorRole(c), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

type confirmReservationRequest struct {
	Items []service.ConfirmItemInput `json:"items"`
}

// ConfirmReservation 确认预约并填报确认数量
func (h *Handler) ConfirmReservation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid reservation id")
		return
	}

	var req confirmReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeBadRequest, "invalid confirmation payload")
		return
	}

	view, err := h.ReservationService.ConfirmReservation(actorID(c), actorRole(c), id, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

type updateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateReservationStatus 推进预约状态
func (h *Handler) UpdateReservationStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid reservation id")
		return
	}

	var req updateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeBadRequest, "invalid status payload")
		return
	}

	view, err := h.ReservationService.UpdateReservationStatus(actorID(c), actorRole(c), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}

type cancelReservationRequest struct {
	Reason string `json:"reason"`
}

// CancelReservation 取消预约
func (h *Handler) CancelReservation(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		response.Error(c, response.CodeBadRequest, "invalid reservation id")
		return
	}

	var req cancelReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = cancelReservationRequest{}
	}

	view, err := h.ReservationService.CancelReservation(actorID(c), actorRole(c), id, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, view)
}
