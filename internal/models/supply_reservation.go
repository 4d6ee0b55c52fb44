package models

import (
	"time"

	"github.com/relief-next/internal/constants"
)

// SupplyReservation 物资预约表
// 生命周期时间戳各自只写入一次，由状态机驱动。
type SupplyReservation struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	RequesterID uint       `gorm:"index;not null" json:"requester_id"`
	StationID   uint       `gorm:"index;not null" json:"station_id"`
	TaskID      *uint      `gorm:"index" json:"task_id,omitempty"` // 关联救援任务（可选）
	NeedID      *uint      `gorm:"index" json:"need_id,omitempty"` // 关联需求（可选）
	Status      string     `gorm:"index;not null" json:"status"`
	ReservedAt  time.Time  `gorm:"index;not null" json:"reserved_at"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	PickedUpAt  *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Items []ReservationItem `gorm:"foreignKey:ReservationID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// TableName 指定表名
func (SupplyReservation) TableName() string {
	return "supply_reservations"
}

// IsTerminal 判断是否处于终态
func (r *SupplyReservation) IsTerminal() bool {
	if r == nil {
		return false
	}
	return IsTerminalReservationStatus(r.Status)
}

// IsTerminalReservationStatus 判断状态是否为终态
func IsTerminalReservationStatus(status string) bool {
	return status == constants.ReservationStatusDelivered || status == constants.ReservationStatusCancelled
}

// NonTerminalReservationStatuses 非终态状态集合
func NonTerminalReservationStatuses() []string {
	return []string{
		constants.ReservationStatusPending,
		constants.ReservationStatusConfirmed,
		constants.ReservationStatusPickedUp,
	}
}
