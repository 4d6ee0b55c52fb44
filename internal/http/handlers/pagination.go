package handlers

import (
	"strconv"

	"github.com/relief-next/internal/config"

	"github.com/gin-gonic/gin"
)

// normalizePagination 解析并归一化分页参数
// 非法值回落默认页；页大小夹在 [1, max] 内。
func normalizePagination(c *gin.Context, cfg *config.ReservationConfig) (int, int) {
	defaultSize := 20
	maxSize := 100
	if cfg != nil {
		if cfg.DefaultPageSize > 0 {
			defaultSize = cfg.DefaultPageSize
		}
		if cfg.MaxPageSize > 0 {
			maxSize = cfg.MaxPageSize
		}
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if err != nil || pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}

// parseUintParam 解析路径参数为 uint
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

// parseFloatQuery 解析查询参数为 float64，缺省返回 0
func parseFloatQuery(c *gin.Context, name string) float64 {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return value
}

// parseUintQuery 解析查询参数为 uint，缺省返回 0
func parseUintQuery(c *gin.Context, name string) uint {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}
