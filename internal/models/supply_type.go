package models

import "time"

// SupplyType 物资类型表（参照数据，极少变更）
type SupplyType struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Type        string    `gorm:"uniqueIndex;not null" json:"type"` // 类型键，如 water
	DisplayName string    `gorm:"not null" json:"display_name"`
	Category    string    `gorm:"index;not null" json:"category"`
	Unit        string    `gorm:"not null" json:"unit"` // 计量单位，如 瓶/箱/件
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (SupplyType) TableName() string {
	return "supply_types"
}
