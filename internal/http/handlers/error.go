package handlers

import (
	"errors"

	"github.com/relief-next/internal/http/response"
	"github.com/relief-next/internal/logger"
	"github.com/relief-next/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError 服务错误到响应码的统一映射
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStationNotFound),
		errors.Is(err, service.ErrInventoryItemNotFound),
		errors.Is(err, service.ErrReservationNotFound),
		errors.Is(err, service.ErrSupplyTypeNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrNeedNotFound):
		response.Error(c, response.CodeNotFound, err.Error())
	case errors.Is(err, service.ErrNotAuthorized):
		response.Error(c, response.CodeForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserDisabled),
		errors.Is(err, service.ErrInvalidToken):
		response.Error(c, response.CodeUnauthorized, err.Error())
	case errors.Is(err, service.ErrIllegalTransition),
		errors.Is(err, service.ErrSupplyUnavailable),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidReservation),
		errors.Is(err, service.ErrInvalidStation),
		errors.Is(err, service.ErrInvalidInventory):
		response.Error(c, response.CodeBadRequest, err.Error())
	case errors.Is(err, service.ErrStationHasActiveReservations),
		errors.Is(err, service.ErrInventoryInUse),
		errors.Is(err, service.ErrDuplicateInventoryItem),
		errors.Is(err, service.ErrDuplicateSupplyType),
		errors.Is(err, service.ErrReservationTerminal):
		response.Error(c, response.CodeConflict, err.Error())
	default:
		logger.Errorw("request_failed",
			"error", err,
			"path", c.FullPath(),
			"method", c.Request.Method,
		)
		response.Error(c, response.CodeServerError, "internal server error")
	}
}
