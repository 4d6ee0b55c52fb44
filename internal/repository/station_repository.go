package repository

import (
	"errors"

	"github.com/relief-next/internal/models"

	"gorm.io/gorm"
)

// StationRepository 站点数据访问接口
type StationRepository interface {
	Create(station *models.SupplyStation) error
	GetByID(id uint) (*models.SupplyStation, error)
	Search(filter StationSearchFilter) ([]models.SupplyStation, int64, error)
	Update(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	ListForMap(geo *GeoFilter, supplyType string) ([]models.SupplyStation, error)
	WithTx(tx *gorm.DB) *GormStationRepository
}

// GormStationRepository GORM 实现
type GormStationRepository struct {
	db *gorm.DB
}

// NewStationRepository 创建站点仓库
func NewStationRepository(db *gorm.DB) *GormStationRepository {
	return &GormStationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormStationRepository) WithTx(tx *gorm.DB) *GormStationRepository {
	if tx == nil {
		return r
	}
	return &GormStationRepository{db: tx}
}

// Create 创建站点
func (r *GormStationRepository) Create(station *models.SupplyStation) error {
	return r.db.Create(station).Error
}

// GetByID 根据 ID 获取站点
func (r *GormStationRepository) GetByID(id uint) (*models.SupplyStation, error) {
	var station models.SupplyStation
	if err := r.db.Preload("Inventory").First(&station, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &station, nil
}

// Search 站点搜索
// 排序固定为启用优先、名称字母序。sqlite 无三角函数，半径过滤退化为
// 边界盒 SQL 预筛 + 取页后进程内精确复核，半径边缘的页可能略有缺行。
func (r *GormStationRepository) Search(filter StationSearchFilter) ([]models.SupplyStation, int64, error) {
	dialect := dbDialectName(r.db)
	query := r.db.Model(&models.SupplyStation{})

	if filter.Name != "" {
		query = query.Where("name "+likeOperatorByDialect(dialect)+" ?", "%"+filter.Name+"%")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.ManagerID != 0 {
		query = query.Where("manager_id = ?", filter.ManagerID)
	}
	if filter.OnlyActive {
		if filter.InactiveOwnerID != 0 {
			query = query.Where("is_active = ? OR manager_id = ?", true, filter.InactiveOwnerID)
		} else {
			query = query.Where("is_active = ?", true)
		}
	}
	if filter.HasSupplyType != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM inventory_items WHERE inventory_items.station_id = supply_stations.id AND inventory_items.supply_type = ? AND inventory_items.is_available = ?)",
			filter.HasSupplyType, true,
		)
	}

	needRecheck := false
	if filter.Geo != nil && filter.Geo.RadiusKM > 0 {
		if dialectSupportsTrig(dialect) {
			query = query.Where(
				geoDistanceCondition("latitude", "longitude"),
				filter.Geo.Latitude, filter.Geo.Longitude, filter.Geo.Latitude, filter.Geo.RadiusKM,
			)
		} else {
			minLat, maxLat, minLng, maxLng := geoBoundingBox(filter.Geo.Latitude, filter.Geo.Longitude, filter.Geo.RadiusKM)
			query = query.Where("latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?", minLat, maxLat, minLng, maxLng)
			needRecheck = true
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var stations []models.SupplyStation
	if err := query.Preload("Inventory").Order("is_active DESC, name ASC").Find(&stations).Error; err != nil {
		return nil, 0, err
	}

	if needRecheck {
		stations = filterByExactDistance(stations, filter.Geo)
	}
	return stations, total, nil
}

// Update 更新站点字段
func (r *GormStationRepository) Update(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.SupplyStation{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除站点
func (r *GormStationRepository) Delete(id uint) error {
	return r.db.Delete(&models.SupplyStation{}, id).Error
}

// ListForMap 地图视图：启用站点及其当前可用物资
func (r *GormStationRepository) ListForMap(geo *GeoFilter, supplyType string) ([]models.SupplyStation, error) {
	dialect := dbDialectName(r.db)
	query := r.db.Model(&models.SupplyStation{}).Where("is_active = ?", true)

	if supplyType != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM inventory_items WHERE inventory_items.station_id = supply_stations.id AND inventory_items.supply_type = ? AND inventory_items.is_available = ?)",
			supplyType, true,
		)
	}

	needRecheck := false
	if geo != nil && geo.RadiusKM > 0 {
		if dialectSupportsTrig(dialect) {
			query = query.Where(
				geoDistanceCondition("latitude", "longitude"),
				geo.Latitude, geo.Longitude, geo.Latitude, geo.RadiusKM,
			)
		} else {
			minLat, maxLat, minLng, maxLng := geoBoundingBox(geo.Latitude, geo.Longitude, geo.RadiusKM)
			query = query.Where("latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?", minLat, maxLat, minLng, maxLng)
			needRecheck = true
		}
	}

	var stations []models.SupplyStation
	if err := query.
		Preload("Inventory", "is_available = ?", true).
		Order("name ASC").
		Find(&stations).Error; err != nil {
		return nil, err
	}
	if needRecheck {
		stations = filterByExactDistance(stations, geo)
	}
	return stations, nil
}

func filterByExactDistance(stations []models.SupplyStation, geo *GeoFilter) []models.SupplyStation {
	if geo == nil || geo.RadiusKM <= 0 {
		return stations
	}
	filtered := stations[:0]
	for _, station := range stations {
		if haversineKM(geo.Latitude, geo.Longitude, station.Latitude, station.Longitude) <= geo.RadiusKM {
			filtered = append(filtered, station)
		}
	}
	return filtered
}
