package service

import (
	"fmt"
	"strings"

	"github.com/relief-next/internal/authz"
	"github.com/relief-next/internal/config"
	"github.com/relief-next/internal/constants"
	"github.com/relief-next/internal/models"
	"github.com/relief-next/internal/repository"

	"gorm.io/gorm"
)

// CreateStationInput 创建站点输入
type CreateStationInput struct {
	Name            string  `json:"name" binding:"required"`
	Address         string  `json:"address" binding:"required"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	LocationDetails string  `json:"location_details"`
	ContactInfo     string  `json:"contact_info"`
	CapacityInfo    string  `json:"capacity_info"`
	ManagerID       uint    `json:"manager_id"`
}

// UpdateStationInput 更新站点输入，nil 字段不更新
type UpdateStationInput struct {
	Name            *string  `json:"name"`
	Address         *string  `json:"address"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	LocationDetails *string  `json:"location_details"`
	ContactInfo     *string  `json:"contact_info"`
	CapacityInfo    *string  `json:"capacity_info"`
	IsActive        *bool    `json:"is_active"`
}

// SearchStationsInput 站点搜索输入
type SearchStationsInput struct {
	Name          string
	IsActive      *bool
	ManagerID     uint
	HasSupplyType string
	Latitude      float64
	Longitude     float64
	RadiusKM      float64
	Page          int
	PageSize      int
}

// StationService 站点目录服务
type StationService struct {
	stationRepo     repository.StationRepository
	inventoryRepo   repository.InventoryRepository
	reservationRepo repository.ReservationRepository
	cfg             *config.ReservationConfig
}

// NewStationService 创建站点服务
func NewStationService(
	stationRepo repository.StationRepository,
	inventoryRepo repository.InventoryRepository,
	reservationRepo repository.ReservationRepository,
	cfg *config.ReservationConfig,
) *StationService {
	return &StationService{
		stationRepo:     stationRepo,
		inventoryRepo:   inventoryRepo,
		reservationRepo: reservationRepo,
		cfg:             cfg,
	}
}

// CreateStation 创建站点
// 非管理员创建的站点归属本人；管理员可指定归属管理员。
func (s *StationService) CreateStation(actorID uint, role string, input CreateStationInput) (*models.SupplyStation, error) {
	if !authz.Allowed(role, constants.ActionStationCreate) {
		return nil, ErrNotAuthorized
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidStation)
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	managerID := actorID
	if authz.IsAdmin(role) && input.ManagerID != 0 {
		managerID = input.ManagerID
	}

	station := &models.SupplyStation{
		ManagerID:       managerID,
		Name:            strings.TrimSpace(input.Name),
		Address:         input.Address,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		LocationDetails: input.LocationDetails,
		ContactInfo:     input.ContactInfo,
		CapacityInfo:    input.CapacityInfo,
		IsActive:        true,
	}
	if err := s.stationRepo.Create(station); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStationSaveFailed, err)
	}
	return station, nil
}

// GetStation 获取站点详情
// 停用站点仅对管理员与归属管理员可见，其余人按不存在处理。
func (s *StationService) GetStation(actorID uint, role string, stationID uint) (*models.SupplyStation, error) {
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

// SearchStations 站点搜索
// 管理员可按启用状态过滤；其他人只见启用站点，站点管理员额外可见名下停用站点。
func (s *StationService) SearchStations(actorID uint, role string, input SearchStationsInput) ([]models.SupplyStation, int64, error) {
	filter := repository.StationSearchFilter{
		Name:          input.Name,
		ManagerID:     input.ManagerID,
		HasSupplyType: input.HasSupplyType,
		Page:          input.Page,
		PageSize:      input.PageSize,
	}
	if authz.IsAdmin(role) {
		filter.IsActive = input.IsActive
	} else {
		filter.OnlyActive = true
		if role == constants.RoleManager {
			filter.InactiveOwnerID = actorID
		}
	}
	if geo, err := s.buildGeoFilter(input.Latitude, input.Longitude, input.RadiusKM); err != nil {
		return nil, 0, err
	} else if geo != nil {
		filter.Geo = geo
	}

	stations, total, err := s.stationRepo.Search(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStationFetchFailed, err)
	}
	return stations, total, nil
}

// UpdateStation 更新站点
func (s *StationService) UpdateStation(actorID uint, role string, stationID uint, input UpdateStationInput) (*models.SupplyStation, error) {
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

	updates := map[string]interface{}{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidStation)
		}
		updates["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Latitude != nil || input.Longitude != nil {
		latitude := station.Latitude
		longitude := station.Longitude
		if input.Latitude != nil {
			latitude = *input.Latitude
		}
		if input.Longitude != nil {
			longitude = *input.Longitude
		}
		if err := validateCoordinates(latitude, longitude); err != nil {
			return nil, err
		}
		updates["latitude"] = latitude
		updates["longitude"] = longitude
	}
	if input.LocationDetails != nil {
		updates["location_details"] = *input.LocationDetails
	}
	if input.ContactInfo != nil {
		updates["contact_info"] = *input.ContactInfo
	}
	if input.CapacityInfo != nil {
		updates["capacity_info"] = *input.CapacityInfo
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return station, nil
	}

	if err := s.stationRepo.Update(station.ID, updates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStationSaveFailed, err)
	}
	return s.stationRepo.GetByID(station.ID)
}

// DeleteStation 删除站点及其库存
// 存在进行中预约的站点拒绝删除。
func (s *StationService) DeleteStation(actorID uint, role string, stationID uint) error {
	station, err := s.stationRepo.GetByID(stationID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStationFetchFailed, err)
	}
	if station == nil {
		return ErrStationNotFound
	}
	if !authz.CanManageStation(actorID, role, station) {
		return ErrNotAuthorized
	}

	active, err := s.reservationRepo.CountNonTerminalByStation(station.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReservationFetchFailed, err)
	}
	if active > 0 {
		return ErrStationHasActiveReservations
	}

	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.inventoryRepo.WithTx(tx).DeleteByStation(station.ID); err != nil {
			return err
		}
		return s.stationRepo.WithTx(tx).Delete(station.ID)
	}); err != nil {
		return fmt.Errorf("%w: %v", ErrStationSaveFailed, err)
	}
	return nil
}

// MapView 地图视图：启用站点及其当前可用物资
func (s *StationService) MapView(latitude, longitude, radiusKM float64, supplyType string) ([]models.SupplyStation, error) {
	geo, err := s.buildGeoFilter(latitude, longitude, radiusKM)
	if err != nil {
		return nil, err
	}
	stations, err := s.stationRepo.ListForMap(geo, supplyType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStationFetchFailed, err)
	}
	return stations, nil
}

func (s *StationService) buildGeoFilter(latitude, longitude, radiusKM float64) (*repository.GeoFilter, error) {
	if radiusKM <= 0 {
		return nil, nil
	}
	if err := validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}
	maxRadius := 100.0
	if s.cfg != nil && s.cfg.MaxSearchRadiusKM > 0 {
		maxRadius = s.cfg.MaxSearchRadiusKM
	}
	if radiusKM > maxRadius {
		radiusKM = maxRadius
	}
	return &repository.GeoFilter{
		Latitude:  latitude,
		Longitude: longitude,
		RadiusKM:  radiusKM,
	}, nil
}

func validateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return fmt.Errorf("%w: latitude out of range", ErrInvalidStation)
	}
	if longitude < -180 || longitude > 180 {
		return fmt.Errorf("%w: longitude out of range", ErrInvalidStation)
	}
	return nil
}
