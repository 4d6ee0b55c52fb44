package handlers

import (
	"github.com/relief-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 邮箱密码登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.CodeBadRequest, "invalid login request")
		return
	}

	token, user, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Profile 当前用户信息
func (h *Handler) Profile(c *gin.Context) {
	user, err := h.AuthService.GetUser(actorID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		response.Error(c, response.CodeUnauthorized, "user not found")
		return
	}
	response.Success(c, user)
}
