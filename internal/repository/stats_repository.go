package repository

import (
	"github.com/relief-next/internal/models"

	"gorm.io/gorm"
)

// StatsRepository 聚合统计查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type StatsRepository interface {
	GetOverview() (StatsOverviewRow, error)
	CountReservationsByStatus() ([]StatusCountRow, error)
	CountStationsByManagerRole() ([]RoleCountRow, error)
	CountReservedBySupplyType() ([]SupplyTypeCountRow, error)
}

// StatsOverviewRow 总览统计原始结果
type StatsOverviewRow struct {
	StationsTotal        int64
	StationsActive       int64
	SupplyTypesTotal     int64
	SupplyTypesAvailable int64
	RequestedQuantity    int64
	ConfirmedQuantity    int64
}

// StatusCountRow 按状态分组统计
type StatusCountRow struct {
	Status string
	Count  int64
}

// RoleCountRow 按角色分组统计
type RoleCountRow struct {
	Role  string
	Count int64
}

// SupplyTypeCountRow 按物资类型分组统计
type SupplyTypeCountRow struct {
	SupplyType string
	Count      int64
	Quantity   int64
}

// GormStatsRepository GORM 聚合实现
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建统计仓库
func NewStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// GetOverview 获取总览统计
func (r *GormStatsRepository) GetOverview() (StatsOverviewRow, error) {
	result := StatsOverviewRow{}

	if err := r.db.Model(&models.SupplyStation{}).Count(&result.StationsTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.SupplyStation{}).
		Where("is_active = ?", true).
		Count(&result.StationsActive).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.InventoryItem{}).
		Distinct("supply_type").
		Count(&result.SupplyTypesTotal).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.InventoryItem{}).
		Where("is_available = ?", true).
		Distinct("supply_type").
		Count(&result.SupplyTypesAvailable).Error; err != nil {
		return result, err
	}

	var quantities struct {
		Requested int64
		Confirmed int64
	}
	if err := r.db.Model(&models.ReservationItem{}).
		Select("COALESCE(SUM(requested_quantity), 0) AS requested, COALESCE(SUM(confirmed_quantity), 0) AS confirmed").
		Scan(&quantities).Error; err != nil {
		return result, err
	}
	result.RequestedQuantity = quantities.Requested
	result.ConfirmedQuantity = quantities.Confirmed
	return result, nil
}

// CountReservationsByStatus 按状态统计预约数
func (r *GormStatsRepository) CountReservationsByStatus() ([]StatusCountRow, error) {
	var rows []StatusCountRow
	if err := r.db.Model(&models.SupplyReservation{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountStationsByManagerRole 按管理者角色统计站点数
func (r *GormStatsRepository) CountStationsByManagerRole() ([]RoleCountRow, error) {
	var rows []RoleCountRow
	if err := r.db.Model(&models.SupplyStation{}).
		Select("users.role AS role, COUNT(*) AS count").
		Joins("JOIN users ON users.id = supply_stations.manager_id").
		Group("users.role").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountReservedBySupplyType 按物资类型统计预约明细
func (r *GormStatsRepository) CountReservedBySupplyType() ([]SupplyTypeCountRow, error) {
	var rows []SupplyTypeCountRow
	if err := r.db.Model(&models.ReservationItem{}).
		Select("supply_type, COUNT(*) AS count, COALESCE(SUM(requested_quantity), 0) AS quantity").
		Group("supply_type").
		Order("supply_type ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
