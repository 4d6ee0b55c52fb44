package models

import "time"

// VictimNeed 受灾需求表
// 本核心只做存在性校验，需求本身由外部模块维护。
type VictimNeed struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	VictimID  uint      `gorm:"index;not null" json:"victim_id"`
	Status    string    `gorm:"index;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (VictimNeed) TableName() string {
	return "victim_needs"
}
