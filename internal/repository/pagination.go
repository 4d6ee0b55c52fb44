package repository

import "gorm.io/gorm"

// paginate 按页码截取查询窗口
// 页大小不合法时不截取，由调用方的归一化兜底；页码越界回落到第一页。
func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}
