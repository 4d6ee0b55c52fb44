package models

import "time"

// InventoryItem 站点库存表
// 约束：同一站点同一物资类型至多一条记录；可用性为布尔而非数量。
type InventoryItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	StationID   uint      `gorm:"uniqueIndex:idx_station_supply;not null" json:"station_id"`
	SupplyType  string    `gorm:"uniqueIndex:idx_station_supply;not null" json:"supply_type"`
	Description string    `json:"description,omitempty"`
	IsAvailable bool      `gorm:"index;not null;default:true" json:"is_available"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 指定表名
func (InventoryItem) TableName() string {
	return "inventory_items"
}
