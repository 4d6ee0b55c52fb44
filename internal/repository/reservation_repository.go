package repository

import (
	"errors"

	"github.com/relief-next/internal/models"

	"gorm.io/gorm"
)

// ReservationRepository 预约数据访问接口
type ReservationRepository interface {
	Create(reservation *models.SupplyReservation, items []models.ReservationItem) error
	GetByID(id uint) (*models.SupplyReservation, error)
	List(filter ReservationListFilter) ([]models.SupplyReservation, int64, error)
	Update(id uint, updates map[string]interface{}) error
	ReplaceItems(reservationID uint, items []models.ReservationItem) error
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	UpdateItemConfirmation(reservationID uint, supplyType string, confirmedQuantity int, notes string) (int64, error)
	CountNonTerminalByStation(stationID uint) (int64, error)
	CountNonTerminalBySupplyType(stationID uint, supplyType string) (int64, error)
	WithTx(tx *gorm.DB) *GormReservationRepository
}

// GormReservationRepository GORM 实现
type GormReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository 创建预约仓库
func NewReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReservationRepository) WithTx(tx *gorm.DB) *GormReservationRepository {
	if tx == nil {
		return r
	}
	return &GormReservationRepository{db: tx}
}

// Create 创建预约及其明细
// 头行与明细行必须在同一事务内提交，调用方负责传入事务绑定的仓库。
func (r *GormReservationRepository) Create(reservation *models.SupplyReservation, items []models.ReservationItem) error {
	if err := r.db.Create(reservation).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ReservationID = reservation.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID 根据 ID 获取预约详情
func (r *GormReservationRepository) GetByID(id uint) (*models.SupplyReservation, error) {
	var reservation models.SupplyReservation
	if err := r.db.Preload("Items").First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reservation, nil
}

// List 预约列表
func (r *GormReservationRepository) List(filter ReservationListFilter) ([]models.SupplyReservation, int64, error) {
	query := r.db.Model(&models.SupplyReservation{})

	if filter.StationID != 0 {
		query = query.Where("station_id = ?", filter.StationID)
	}
	if filter.RequesterID != 0 {
		query = query.Where("requester_id = ?", filter.RequesterID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TaskID != 0 {
		query = query.Where("task_id = ?", filter.TaskID)
	}
	if filter.NeedID != 0 {
		query = query.Where("need_id = ?", filter.NeedID)
	}
	if filter.ManagerScopeID != 0 {
		query = query.Where(
			"station_id IN (SELECT id FROM supply_stations WHERE manager_id = ?) OR requester_id = ?",
			filter.ManagerScopeID, filter.ManagerScopeID,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var reservations []models.SupplyReservation
	if err := query.Preload("Items").Order("id DESC").Find(&reservations).Error; err != nil {
		return nil, 0, err
	}
	return reservations, total, nil
}

// Update 更新预约头字段
func (r *GormReservationRepository) Update(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.SupplyReservation{}).Where("id = ?", id).Updates(updates).Error
}

// ReplaceItems 整体替换预约明细
// 与头行更新同属一次编辑，调用方负责传入事务绑定的仓库。
func (r *GormReservationRepository) ReplaceItems(reservationID uint, items []models.ReservationItem) error {
	if err := r.db.Where("reservation_id = ?", reservationID).Delete(&models.ReservationItem{}).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].ID = 0
		items[i].ReservationID = reservationID
	}
	if len(items) > 0 {
		return r.db.Create(&items).Error
	}
	return nil
}

// UpdateStatus 更新预约状态
func (r *GormReservationRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = status
	return r.db.Model(&models.SupplyReservation{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateItemConfirmation 按（预约，物资类型）写入确认数量与备注
func (r *GormReservationRepository) UpdateItemConfirmation(reservationID uint, supplyType string, confirmedQuantity int, notes string) (int64, error) {
	updates := map[string]interface{}{
		"confirmed_quantity": confirmedQuantity,
	}
	if notes != "" {
		updates["notes"] = notes
	}
	result := r.db.Model(&models.ReservationItem{}).
		Where("reservation_id = ? AND supply_type = ?", reservationID, supplyType).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// CountNonTerminalByStation 统计站点的非终态预约数
func (r *GormReservationRepository) CountNonTerminalByStation(stationID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.SupplyReservation{}).
		Where("station_id = ? AND status IN ?", stationID, models.NonTerminalReservationStatuses()).
		Count(&count).Error
	return count, err
}

// CountNonTerminalBySupplyType 统计引用某站点某物资类型的非终态预约数
func (r *GormReservationRepository) CountNonTerminalBySupplyType(stationID uint, supplyType string) (int64, error) {
	var count int64
	err := r.db.Model(&models.SupplyReservation{}).
		Joins("JOIN reservation_items ON reservation_items.reservation_id = supply_reservations.id").
		Where("supply_reservations.station_id = ? AND reservation_items.supply_type = ? AND supply_reservations.status IN ?",
			stationID, supplyType, models.NonTerminalReservationStatuses()).
		Count(&count).Error
	return count, err
}
