package models

import "time"

// SupplyStation 物资站点表
type SupplyStation struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	ManagerID       uint      `gorm:"index;not null" json:"manager_id"` // 站点管理员（唯一归属）
	Name            string    `gorm:"index;not null" json:"name"`
	Address         string    `gorm:"not null" json:"address"`
	Latitude        float64   `gorm:"index;not null" json:"latitude"`
	Longitude       float64   `gorm:"index;not null" json:"longitude"`
	LocationDetails string    `json:"location_details,omitempty"` // 位置补充说明
	ContactInfo     string    `json:"contact_info,omitempty"`
	CapacityInfo    string    `json:"capacity_info,omitempty"` // 容量信息，透传字段
	IsActive        bool      `gorm:"index;not null;default:true" json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Inventory []InventoryItem `gorm:"foreignKey:StationID" json:"inventory,omitempty"`
}

// TableName 指定表名
func (SupplyStation) TableName() string {
	return "supply_stations"
}
