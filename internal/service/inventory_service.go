package service

import (
	"fmt"
	"strings"

	"github.com/relief-next/internal/authz"
	"github.com/relief-next/internal/models"
	"github.com/relief-next/internal/repository"

	"gorm.io/gorm"
)

// CreateInventoryInput 创建库存输入
type CreateInventoryInput struct {
	SupplyType  string `json:"supply_type" binding:"required"`
	Description string `json:"description"`
	IsAvailable *bool  `json:"is_available"`
	Notes       string `json:"notes"`
}

// UpdateInventoryInput 更新库存输入，nil 字段不更新
type UpdateInventoryInput struct {
	Description *string `json:"description"`
	IsAvailable *bool   `json:"is_available"`
	Notes       *string `json:"notes"`
}

// BulkInventoryEntry 批量更新的单条目输入
type BulkInventoryEntry struct {
	SupplyType  string `json:"supply_type" binding:"required"`
	Description string `json:"description"`
	IsAvailable *bool  `json:"is_available"`
	Notes       string `json:"notes"`
}

// BulkUpdateInput 批量更新输入
type BulkUpdateInput struct {
	ReplaceExisting bool                 `json:"replace_existing"`
	Items           []BulkInventoryEntry `json:"items" binding:"required"`
}

// BulkUpdateResult 批量更新结果
// 事务整体失败时 Success 为 false 且各计数归零；
// 单条目校验失败只记入 Errors，不影响其余条目。
type BulkUpdateResult struct {
	Success      bool     `json:"success"`
	CreatedCount int      `json:"created_count"`
	UpdatedCount int      `json:"updated_count"`
	DeletedCount int      `json:"deleted_count"`
	Errors       []string `json:"errors"`
	Message      string   `json:"message"`
}

// InventoryService 站点库存台账服务
type InventoryService struct {
	inventoryRepo   repository.InventoryRepository
	stationRepo     repository.StationRepository
	reservationRepo repository.ReservationRepository
	supplyTypeRepo  repository.SupplyTypeRepository
}

// NewInventoryService 创建库存服务
func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	stationRepo repository.StationRepository,
	reservationRepo repository.ReservationRepository,
	supplyTypeRepo repository.SupplyTypeRepository,
) *InventoryService {
	return &InventoryService{
		inventoryRepo:   inventoryRepo,
		stationRepo:     stationRepo,
		reservationRepo: reservationRepo,
		supplyTypeRepo:  supplyTypeRepo,
	}
}

// ListStationInventory 获取站点库存列表
func (s *InventoryService) ListStationInventory(actorID uint, role string, stationID uint) ([]models.InventoryItem, error) {
	if _, err := s.loadVisibleStation(actorID, role, stationID); err != nil {
		return nil, err
	}
	items, err := s.inventoryRepo.ListByStation(stationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInventoryFetchFailed, err)
	}
	return items, nil
}

// CreateInventoryItem 新增库存条目
// 同一站点同一物资类型只允许一条记录。
func (s *InventoryService) CreateInventoryItem(actorID uint, role string, stationID uint, input CreateInventoryInput) (*models.InventoryItem, error) {
	station, err := s.loadManagedStation(actorID, role, stationID)
	if err != nil {
		return nil, err
	}

	supplyType, err := s.resolveSupplyType(input.SupplyType)
	if err != nil {
		return nil, err
	}

	existing, err := s.inventoryRepo.GetByStationAndType(station.ID, supplyType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInventoryFetchFailed, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateInventoryItem, supplyType)
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}
	item := &models.InventoryItem{
		StationID:   station.ID,
		SupplyType:  supplyType,
		Description: input.Description,
		IsAvailable: available,
		Notes:       input.Notes,
	}
	if err := s.inventoryRepo.Create(item); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInventorySaveFailed, err)
	}
	return item, nil
}

// UpdateInventoryItem 更新库存条目
func (s *InventoryService) UpdateInventoryItem(actorID uint, role string, itemID uint, input UpdateInventoryInput) (*models.InventoryItem, error) {
	item, _, err := s.loadManagedItem(actorID, role, itemID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return item, nil
	}

	if err := s.inventoryRepo.Update(item.ID, updates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInventorySaveFailed, err)
	}
	return s.inventoryRepo.GetByID(item.ID)
}

// DeleteInventoryItem 删除库存条目
// 被进行中预约引用的条目拒绝删除。
func (s *InventoryService) DeleteInventoryItem(actorID uint, role string, itemID uint) error {
	item, _, err := s.loadManagedItem(actorID, role, itemID)
	if err != nil {
		return err
	}

	referenced, err := s.reservationRepo.CountNonTerminalBySupplyType(item.StationID, item.SupplyType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReservationFetchFailed, err)
	}
	if referenced > 0 {
		return ErrInventoryInUse
	}

	if err := s.inventoryRepo.Delete(item.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrInventorySaveFailed, err)
	}
	return nil
}

// BulkUpdateInventory 批量更新站点库存
// replace_existing 为真时先清空站点库存再逐条插入；为假时按物资类型合并。
// 条目级校验失败逐条记入结果；写库在同一事务内，整体失败则整批不落库。
func (s *InventoryService) BulkUpdateInventory(actorID uint, role string, stationID uint, input BulkUpdateInput) (*BulkUpdateResult, error) {
	station, err := s.loadManagedStation(actorID, role, stationID)
	if err != nil {
		return nil, err
	}

	result := &BulkUpdateResult{Success: true, Errors: []string{}}

	// 条目校验在事务外完成，坏条目不进事务
	seen := map[string]bool{}
	valid := make([]BulkInventoryEntry, 0, len(input.Items))
	for i, entry := range input.Items {
		supplyType, err := s.resolveSupplyType(entry.SupplyType)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: %v", i, err))
			continue
		}
		if seen[supplyType] {
			result.Errors = append(result.Errors, fmt.Sprintf("item %d: duplicate supply_type %s", i, supplyType))
			continue
		}
		seen[supplyType] = true
		entry.SupplyType = supplyType
		valid = append(valid, entry)
	}

	txErr := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.inventoryRepo.WithTx(tx)

		if input.ReplaceExisting {
			deleted, err := repo.DeleteByStation(station.ID)
			if err != nil {
				return err
			}
			result.DeletedCount = int(deleted)
		}

		for _, entry := range valid {
			available := true
			if entry.IsAvailable != nil {
				available = *entry.IsAvailable
			}

			if !input.ReplaceExisting {
				existing, err := repo.GetByStationAndType(station.ID, entry.SupplyType)
				if err != nil {
					return err
				}
				if existing != nil {
					if err := repo.Update(existing.ID, map[string]interface{}{
						"description":  entry.Description,
						"is_available": available,
						"notes":        entry.Notes,
					}); err != nil {
						return err
					}
					result.UpdatedCount++
					continue
				}
			}

			if err := repo.Create(&models.InventoryItem{
				StationID:   station.ID,
				SupplyType:  entry.SupplyType,
				Description: entry.Description,
				IsAvailable: available,
				Notes:       entry.Notes,
			}); err != nil {
				return err
			}
			result.CreatedCount++
		}
		return nil
	})
	if txErr != nil {
		result.Success = false
		result.CreatedCount = 0
		result.UpdatedCount = 0
		result.DeletedCount = 0
		result.Message = fmt.Sprintf("bulk update failed: %v", txErr)
		return result, nil
	}

	result.Message = fmt.Sprintf("created %d, updated %d, deleted %d", result.CreatedCount, result.UpdatedCount, result.DeletedCount)
	return result, nil
}

func (s *InventoryService) resolveSupplyType(raw string) (string, error) {
	supplyType := strings.TrimSpace(raw)
	if supplyType == "" {
		return "", fmt.Errorf("%w: supply_type is required", ErrInvalidInventory)
	}
	known, err := s.supplyTypeRepo.GetByType(supplyType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInventoryFetchFailed, err)
	}
	if known == nil {
		return "", fmt.Errorf("%w: %s", ErrSupplyTypeNotFound, supplyType)
	}
	return supplyType, nil
}

func (s *InventoryService) loadVisibleStation(actorID uint, role string, stationID uint) (*models.SupplyStation, error) {
	station, err := s.stationRepo.GetByID(stationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStationFetchFailed, err)
	}
	if station == nil {
		return nil, ErrStationNotFound
	}
	if !station.IsActive && !authz.CanManageStation(actorID, role, station) {
		return nil, ErrStationNotFound
	}
	return station, nil
}

func (s *InventoryService) loadManagedStation(actorID uint, role string, stationID uint) (*models.SupplyStation, error) {
	station, err := s.stationRepo.GetByID(stationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStationFetchFailed, err)
	}
	if station == nil {
		return nil, ErrStationNotFound
	}
	if !authz.CanManageStation(actorID, role, station) {
		return nil, ErrNotAuthorized
	}
	return station, nil
}

func (s *InventoryService) loadManagedItem(actorID uint, role string, itemID uint) (*models.InventoryItem, *models.SupplyStation, error) {
	item, err := s.inventoryRepo.GetByID(itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInventoryFetchFailed, err)
	}
	if item == nil {
		return nil, nil, ErrInventoryItemNotFound
	}
	station, err := s.stationRepo.GetByID(item.StationID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStationFetchFailed, err)
	}
	if station == nil {
		return nil, nil, ErrStationNotFound
	}
	if !authz.CanManageStation(actorID, role, station) {
		return nil, nil, ErrNotAuthorized
	}
	return item, station, nil
}
