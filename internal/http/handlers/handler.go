package handlers

import (
	"github.com/relief-next/internal/provider"
)

// Handler HTTP 处理器集合
type Handler struct {
	*provider.Container
}

// NewHandler 创建处理器
func NewHandler(container *provider.Container) *Handler {
	return &Handler{Container: container}
}
