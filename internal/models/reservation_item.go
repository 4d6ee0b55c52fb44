package models

import "time"

// ReservationItem 预约明细表
// confirmed_quantity 在确认前为 NULL，确认时写入（默认 0）。
type ReservationItem struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	ReservationID     uint      `gorm:"index;not null" json:"reservation_id"`
	SupplyType        string    `gorm:"index;not null" json:"supply_type"`
	RequestedQuantity int       `gorm:"not null" json:"requested_quantity"`
	ConfirmedQuantity *int      `json:"confirmed_quantity,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName 指定表名
func (ReservationItem) TableName() string {
	return "reservation_items"
}
