package service

import (
	"fmt"
	"strings"

	"github.com/relief-next/internal/authz"
	"github.com/relief-next/internal/models"
	"github.com/relief-next/internal/repository"
)

// CreateSupplyTypeInput 创建物资类型输入
type CreateSupplyTypeInput struct {
	Type        string `json:"type" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Unit        string `json:"unit"`
}

// SupplyTypeService 物资类型目录服务
type SupplyTypeService struct {
	supplyTypeRepo repository.SupplyTypeRepository
}

// NewSupplyTypeService 创建物资类型服务
func NewSupplyTypeService(supplyTypeRepo repository.SupplyTypeRepository) *SupplyTypeService {
	return &SupplyTypeService{supplyTypeRepo: supplyTypeRepo}
}

// ListSupplyTypes 获取物资类型目录
func (s *SupplyTypeService) ListSupplyTypes() ([]models.SupplyType, error) {
	types, err := s.supplyTypeRepo.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInventoryFetchFailed, err)
	}
	return types, nil
}

// CreateSupplyType 新增物资类型，仅管理员可用
func (s *SupplyTypeService) CreateSupplyType(role string, input CreateSupplyTypeInput) (*models.SupplyType, error) {
	if !authz.IsAdmin(role) {
		return nil, ErrNotAuthorized
	}
	typeKey := strings.TrimSpace(input.Type)
	if typeKey == "" {
		return nil, fmt.Errorf("%w: type is required", ErrInvalidInventory)
	}

	existing, err := s.supplyTypeRepo.GetByType(typeKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInventoryFetchFailed, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSupplyType, typeKey)
	}

	supplyType := &models.SupplyType{
		Type:        typeKey,
		DisplayName: input.DisplayName,
		Category:    input.Category,
		Unit:        input.Unit,
	}
	if err := s.supplyTypeRepo.Create(supplyType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInventorySaveFailed, err)
	}
	return supplyType, nil
}
