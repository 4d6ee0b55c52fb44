package repository

import (
	"errors"

	"github.com/relief-next/internal/models"

	"gorm.io/gorm"
)

// SupplyTypeRepository 物资类型数据访问接口
type SupplyTypeRepository interface {
	List() ([]models.SupplyType, error)
	GetByType(typeKey string) (*models.SupplyType, error)
	Create(supplyType *models.SupplyType) error
}

// GormSupplyTypeRepository GORM 实现
type GormSupplyTypeRepository struct {
	db *gorm.DB
}

// NewSupplyTypeRepository 创建物资类型仓库
func NewSupplyTypeRepository(db *gorm.DB) *GormSupplyTypeRepository {
	return &GormSupplyTypeRepository{db: db}
}

// List 获取全部物资类型
func (r *GormSupplyTypeRepository) List() ([]models.SupplyType, error) {
	var types []models.SupplyType
	if err := r.db.Order("category ASC, type ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// GetByType 按类型键获取
func (r *GormSupplyTypeRepository) GetByType(typeKey string) (*models.SupplyType, error) {
	var supplyType models.SupplyType
	if err := r.db.Where("type = ?", typeKey).First(&supplyType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplyType, nil
}

// Create 创建物资类型
func (r *GormSupplyTypeRepository) Create(supplyType *models.SupplyType) error {
	return r.db.Create(supplyType).Error
}
