package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/relief-next/internal/authz"
	"github.com/relief-next/internal/constants"
	"github.com/relief-next/internal/models"
	"github.com/relief-next/internal/repository"

	"gorm.io/gorm"
)

// ReservationItemInput 预约明细输入
type ReservationItemInput struct {
	SupplyType string `json:"supply_type" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required"`
	Notes      string `json:"notes"`
}

// CreateReservationInput 创建预约输入
type CreateReservationInput struct {
	StationID uint                   `json:"station_id" binding:"required"`
	TaskID    *uint                  `json:"task_id"`
	NeedID    *uint                  `json:"need_id"`
	Notes     string                 `json:"notes"`
	Items     []ReservationItemInput `json:"items" binding:"required"`
}

// ConfirmItemInput 确认预约明细输入
type ConfirmItemInput struct {
	SupplyType        string `json:"supply_type" binding:"required"`
	ConfirmedQuantity int    `json:"confirmed_quantity"`
	Notes             string `json:"notes"`
}

// ReservationListInput 预约列表查询输入
type ReservationListInput struct {
	StationID uint
	Status    string
	TaskID    uint
	NeedID    uint
	Page      int
	PageSize  int
}

// ReservationView 预约视图，附带操作者视角的权限标记
type ReservationView struct {
	models.SupplyReservation
	CanEdit    bool `json:"can_edit"`
	CanConfirm bool `json:"can_confirm"`
}

// ReservationService 预约调度服务
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	stationRepo     repository.StationRepository
	inventoryRepo   repository.InventoryRepository
	refRepo         repository.RefLookupRepository
	notifications   *NotificationService
}

// NewReservationService 创建预约服务
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	stationRepo repository.StationRepository,
	inventoryRepo repository.InventoryRepository,
	refRepo repository.RefLookupRepository,
	notifications *NotificationService,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		stationRepo:     stationRepo,
		inventoryRepo:   inventoryRepo,
		refRepo:         refRepo,
		notifications:   notifications,
	}
}

// CreateReservation 创建预约
// 头行与全部明细在同一事务内落库；任何一行校验失败则整单不写。
func (s *ReservationService) CreateReservation(actorID uint, role string, input CreateReservationInput) (*ReservationView, error) {
	if !authz.Allowed(role, constants.ActionReservationCreate) {
		return nil, ErrNotAuthorized
	}
	if input.StationID == 0 {
		return nil, fmt.Errorf("%w: station_id is required", ErrInvalidReservation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidReservation)
	}

	station, err := s.stationRepo.GetByID(input.StationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStationFetchFailed, err)
	}
	if station == nil || !station.IsActive {
		return nil, ErrStationNotFound
	}

	if input.TaskID != nil && *input.TaskID != 0 {
		exists, err := s.refRepo.TaskExists(*input.TaskID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReservationFetchFailed, err)
		}
		if !exists {
			return nil, ErrTaskNotFound
		}
	}
	if input.NeedID != nil && *input.NeedID != 0 {
		exists, err := s.refRepo.NeedExists(*input.NeedID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReservationFetchFailed, err)
		}
		if !exists {
			return nil, ErrNeedNotFound
		}
	}

	items, err := s.buildReservationItems(station, input.Items)
	if err != nil {
		return nil, err
	}

	reservation := &models.SupplyReservation{
		RequesterID: actorID,
		StationID:   station.ID,
		TaskID:      input.TaskID,
		NeedID:      input.NeedID,
		Status:      constants.ReservationStatusPending,
		ReservedAt:  time.Now(),
		Notes:       input.Notes,
	}
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		return s.reservationRepo.WithTx(tx).Create(reservation, items)
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReservationSaveFailed, err)
	}
	reservation.Items = items

	s.notifications.NotifyReservationEvent(station.ManagerID, constants.NotifyEventReservationCreated, reservation)

	view := s.buildView(actorID, role, reservation, station)
	return &view, nil
}

// UpdateReservationInput 编辑预约输入，nil 字段不更新
type UpdateReservationInput struct {
	Notes *string                `json:"notes"`
	Items []ReservationItemInput `json:"items"`
}

// UpdateReservation 编辑待处理预约的备注与明细
// 仅发起人或管理员可编辑，且只允许 pending 状态；明细整体替换并重走可用性校验。
func (s *ReservationService) UpdateReservation(actorID uint, role string, reservationID uint, input UpdateReservationInput) (*ReservationView, error) {
	reservation, station, err := s.loadForActor(actorID, role, reservationID)
	if err != nil {
		return nil, err
	}
	if !authz.CanEditReservation(actorID, role, reservation) {
		return nil, ErrNotAuthorized
	}
	if models.IsTerminalReservationStatus(reservation.Status) {
		return nil, fmt.Errorf("%w: reservation is %s", ErrReservationTerminal, reservation.Status)
	}
	if reservation.Status != constants.ReservationStatusPending {
		return nil, fmt.Errorf("%w: only pending reservations can be edited", ErrInvalidReservation)
	}

	var items []models.ReservationItem
	if input.Items != nil {
		if len(input.Items) == 0 {
			return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidReservation)
		}
		items, err = s.buildReservationItems(station, input.Items)
		if err != nil {
			return nil, err
		}
	}

	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.reservationRepo.WithTx(tx)
		if input.Items != nil {
			if err := repo.ReplaceItems(reservation.ID, items); err != nil {
				return err
			}
		}
		if input.Notes != nil {
			if err := repo.Update(reservation.ID, map[string]interface{}{"notes": *input.Notes}); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReservationSaveFailed, err)
	}

	updated, err := s.reservationRepo.GetByID(reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReservationFetchFailed, err)
	}
	if updated == nil {
		return nil, ErrReservationNotFound
	}
	view := s.buildView(actorID, role, updated, station)
	return &view, nil
}

// buildReservationItems 校验明细输入并换出库存可用的明细行
func (s *ReservationService) buildReservationItems(station *models.SupplyStation, inputs []ReservationItemInput) ([]models.ReservationItem, error) {
	seen := make(map[string]bool, len(inputs))
	items := make([]models.ReservationItem, 0, len(inputs))
	for _, line := range inputs {
		supplyType := strings.TrimSpace(line.SupplyType)
		if supplyType == "" {
			return nil, fmt.Errorf("%w: supply_type is required", ErrInvalidReservation)
		}
		if seen[supplyType] {
			return nil, fmt.Errorf("%w: duplicate supply_type %s", ErrInvalidReservation, supplyType)
		}
		seen[supplyType] = true
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, supplyType)
		}
		inventory, err := s.inventoryRepo.GetByStationAndType(station.ID, supplyType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInventoryFetchFailed, err)
		}
		if inventory == nil || !inventory.IsAvailable {
			return nil, fmt.Errorf("%w: %s", ErrSupplyUnavailable, supplyType)
		}
		items = append(items, models.ReservationItem{
			SupplyType:        supplyType,
			RequestedQuantity: line.Quantity,
			Notes:             line.Notes,
		})
	}
	return items, nil
}

// ConfirmReservation 站点管理员确认预约并填报各明细的确认数量
// 未填报的明细确认数量记 0。确认时间只在本次转移写入。
func (s *ReservationService) ConfirmReservation(actorID uint, role string, reservationID uint, items []ConfirmItemInput) (*ReservationView, error) {
	reservation, station, err := s.loadForActor(actorID, role, reservationID)
	if err != nil {
		return nil, err
	}
	if !authz.CanConfirmReservation(actorID, role, station) {
		return nil, ErrNotAuthorized
	}
	if err := validateTransition(reservation.Status, constants.ReservationStatusConfirmed); err != nil {
		return nil, err
	}

	confirmed := make(map[string]ConfirmItemInput, len(items))
	for _, line := range items {
		supplyType := strings.TrimSpace(line.SupplyType)
		if supplyType == "" {
			return nil, fmt.Errorf("%w: supply_type is required", ErrInvalidReservation)
		}
		if line.ConfirmedQuantity < 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, supplyType)
		}
		found := false
		for _, item := range reservation.Items {
			if item.SupplyType == supplyType {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: supply_type %s not in reservation", ErrInvalidReservation, supplyType)
		}
		confirmed[supplyType] = line
	}

	now := time.Now()
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.reservationRepo.WithTx(tx)
		for _, item := range reservation.Items {
			line := confirmed[item.SupplyType]
			if _, err := repo.UpdateItemConfirmation(reservation.ID, item.SupplyType, line.ConfirmedQuantity, line.Notes); err != nil {
				return err
			}
		}
		return repo.UpdateStatus(reservation.ID, constants.ReservationStatusConfirmed, map[string]interface{}{
			"confirmed_at": now,
		})
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReservationSaveFailed, err)
	}

	return s.afterTransition(actorID, role, reservation.ID, reservation.RequesterID, station)
}

// UpdateReservationStatus 推进预约状态
// 目标为 confirmed 时等价于一次全零确认；目标为 cancelled 时走取消路径。
func (s *ReservationService) UpdateReservationStatus(actorID uint, role string, reservationID uint, newStatus string) (*ReservationView, error) {
	if newStatus == constants.ReservationStatusConfirmed {
		return s.ConfirmReservation(actorID, role, reservationID, nil)
	}
	if newStatus == constants.ReservationStatusCancelled {
		return s.CancelReservation(actorID, role, reservationID, "")
	}

	reservation, station, err := s.loadForActor(actorID, role, reservationID)
	if err != nil {
		return nil, err
	}
	if !authz.CanTransitionReservation(actorID, role, reservation, station) {
		return nil, ErrNotAuthorized
	}
	if err := validateTransition(reservation.Status, newStatus); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if column, ok := transitionTimestampColumns[newStatus]; ok {
		updates[column] = time.Now()
	}
	if err := s.reservationRepo.UpdateStatus(reservation.ID, newStatus, updates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReservationSaveFailed, err)
	}

	return s.afterTransition(actorID, role, reservation.ID, reservation.RequesterID, station)
}

// CancelReservation 取消预约
// 取消原因追加到备注，不覆盖既有内容。
func (s *ReservationService) CancelReservation(actorID uint, role string, reservationID uint, reason string) (*ReservationView, error) {
	reservation, station, err := s.loadForActor(actorID, role, reservationID)
	if err != nil {
		return nil, err
	}
	if !authz.CanTransitionReservation(actorID, role, reservation, station) {
		return nil, ErrNotAuthorized
	}
	if err := validateTransition(reservation.Status, constants.ReservationStatusCancelled); err != nil {
		return nil, err
	}

	notes := reservation.Notes
	entry := "cancelled"
	if strings.TrimSpace(reason) != "" {
		entry = "cancelled: " + strings.TrimSpace(reason)
	}
	if notes != "" {
		notes = notes + "\n" + entry
	} else {
		notes = entry
	}
	if err := s.reservationRepo.UpdateStatus(reservation.ID, constants.ReservationStatusCancelled, map[string]interface{}{
		"notes": notes,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReservationSaveFailed, err)
	}

	return s.afterTransition(actorID, role, reservation.ID, reservation.RequesterID, station)
}

// GetReservation 获取预约详情
// 对操作者不可见的预约按不存在处理。
func (s *ReservationService) GetReservation(actorID uint, role string, reservationID uint) (*ReservationView, error) {
	reservation, station, err := s.loadForActor(actorID, role, reservationID)
	if err != nil {
		return nil, err
	}
	view := s.buildView(actorID, role, reservation, station)
	return &view, nil
}

// ListReservations 预约列表
// 管理员见全量；站点管理员见名下站点与本人发起的预约；其他角色仅见本人。
func (s *ReservationService) ListReservations(actorID uint, role string, input ReservationListInput) ([]ReservationView, int64, error) {
	filter := repository.ReservationListFilter{
		StationID: input.StationID,
		Status:    input.Status,
		TaskID:    input.TaskID,
		NeedID:    input.NeedID,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}
	switch {
	case authz.IsAdmin(role):
	case role == constants.RoleManager:
		filter.ManagerScopeID = actorID
	default:
		filter.RequesterID = actorID
	}

	reservations, total, err := s.reservationRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrReservationFetchFailed, err)
	}

	stations := map[uint]*models.SupplyStation{}
	views := make([]ReservationView, 0, len(reservations))
	for i := range reservations {
		reservation := &reservations[i]
		station, ok := stations[reservation.StationID]
		if !ok {
			station, err = s.stationRepo.GetByID(reservation.StationID)
			if err != nil {
				return nil, 0, fmt.Errorf("%w: %v", ErrStationFetchFailed, err)
			}
			stations[reservation.StationID] = station
		}
		views = append(views, s.buildView(actorID, role, reservation, station))
	}
	return views, total, nil
}

// loadForActor 取出预约与所属站点，并做可见性裁决
func (s *ReservationService) loadForActor(actorID uint, role string, reservationID uint) (*models.SupplyReservation, *models.SupplyStation, error) {
	reservation, err := s.reservationRepo.GetByID(reservationID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrReservationFetchFailed, err)
	}
	if reservation == nil {
		return nil, nil, ErrReservationNotFound
	}
	station, err := s.stationRepo.GetByID(reservation.StationID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrStationFetchFailed, err)
	}
	if !authz.CanViewReservation(actorID, role, reservation, station) {
		return nil, nil, ErrReservationNotFound
	}
	return reservation, station, nil
}

// afterTransition 状态落库后回读、通知并构造视图
func (s *ReservationService) afterTransition(actorID uint, role string, reservationID, requesterID uint, station *models.SupplyStation) (*ReservationView, error) {
	updated, err := s.reservationRepo.GetByID(reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReservationFetchFailed, err)
	}
	if updated == nil {
		return nil, ErrReservationNotFound
	}

	recipient := requesterID
	if recipient == actorID && station != nil {
		recipient = station.ManagerID
	}
	s.notifications.NotifyReservationEvent(recipient, constants.NotifyEventReservationStatus, updated)

	view := s.buildView(actorID, role, updated, station)
	return &view, nil
}

// buildView 按操作者视角计算权限标记
// 标记只反映身份与归属，不受预约状态影响；状态约束由状态机裁决。
func (s *ReservationService) buildView(actorID uint, role string, reservation *models.SupplyReservation, station *models.SupplyStation) ReservationView {
	return ReservationView{
		SupplyReservation: *reservation,
		CanEdit:           authz.CanEditReservation(actorID, role, reservation),
		CanConfirm:        authz.CanConfirmReservation(actorID, role, station),
	}
}
