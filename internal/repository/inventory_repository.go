package repository

import (
	"errors"

	"github.com/relief-next/internal/models"

	"gorm.io/gorm"
)

// InventoryRepository 库存数据访问接口
type InventoryRepository interface {
	Create(item *models.InventoryItem) error
	GetByID(id uint) (*models.InventoryItem, error)
	GetByStationAndType(stationID uint, supplyType string) (*models.InventoryItem, error)
	ListByStation(stationID uint) ([]models.InventoryItem, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	DeleteByStation(stationID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormInventoryRepository
}

// GormInventoryRepository GORM 实现
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 创建库存仓库
func NewInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInventoryRepository) WithTx(tx *gorm.DB) *GormInventoryRepository {
	if tx == nil {
		return r
	}
	return &GormInventoryRepository{db: tx}
}

// Create 创建库存记录
func (r *GormInventoryRepository) Create(item *models.InventoryItem) error {
	return r.db.Create(item).Error
}

// GetByID 根据 ID 获取库存记录
func (r *GormInventoryRepository) GetByID(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByStationAndType 根据站点与物资类型获取库存记录
func (r *GormInventoryRepository) GetByStationAndType(stationID uint, supplyType string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.
		Where("station_id = ? AND supply_type = ?", stationID, supplyType).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListByStation 获取站点库存列表
func (r *GormInventoryRepository) ListByStation(stationID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := r.db.
		Where("station_id = ?", stationID).
		Order("supply_type ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update 更新库存字段
func (r *GormInventoryRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除库存记录
func (r *GormInventoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.InventoryItem{}, id).Error
}

// DeleteByStation 删除站点全部库存，返回删除行数
func (r *GormInventoryRepository) DeleteByStation(stationID uint) (int64, error) {
	result := r.db.Where("station_id = ?", stationID).Delete(&models.InventoryItem{})
	return result.RowsAffected, result.Error
}
