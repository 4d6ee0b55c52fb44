package repository

import (
	"github.com/relief-next/internal/models"

	"gorm.io/gorm"
)

// RefLookupRepository 外部引用存在性校验接口
// 任务与需求由外部模块维护，本核心只关心 exists(id)。
type RefLookupRepository interface {
	TaskExists(id uint) (bool, error)
	NeedExists(id uint) (bool, error)
}

// GormRefLookupRepository GORM 实现
type GormRefLookupRepository struct {
	db *gorm.DB
}

// NewRefLookupRepository 创建引用校验仓库
func NewRefLookupRepository(db *gorm.DB) *GormRefLookupRepository {
	return &GormRefLookupRepository{db: db}
}

// TaskExists 判断救援任务是否存在
func (r *GormRefLookupRepository) TaskExists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.ReliefTask{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// NeedExists 判断受灾需求是否存在
func (r *GormRefLookupRepository) NeedExists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.VictimNeed{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
