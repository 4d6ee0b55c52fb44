package models

import "time"

// ReliefTask 救援任务表
// 本核心只做存在性校验，任务本身由外部模块维护。
type ReliefTask struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	CreatorID uint      `gorm:"index;not null" json:"creator_id"`
	Status    string    `gorm:"index;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 指定表名
func (ReliefTask) TableName() string {
	return "relief_tasks"
}
