package handlers

import (
	"github.com/relief-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// actorID 从请求上下文取操作者 ID
func actorID(c *gin.Context) uint {
	value, exists := c.Get(constants.CtxKeyActorID)
	if !exists {
		return 0
	}
	id, ok := value.(uint)
	if !ok {
		return 0
	}
	return id
}

// actorRole 从请求上下文取操作者角色
func actorRole(c *gin.Context) string {
	value, exists := c.Get(constants.CtxKeyActorRole)
	if !exists {
		return ""
	}
	role, ok := value.(string)
	if !ok {
		return ""
	}
	return role
}
