package authz

import (
	"github.com/relief-next/internal/constants"
	"github.com/relief-next/internal/models"
)

// 动作 → 允许角色 策略表。
// 所有权相关的判断（站点归属、预约归属）不进表，由显式谓词函数表达。
var actionPolicy = map[string][]string{
	constants.ActionStationCreate: {
		constants.RoleAdmin,
		constants.RoleManager,
	},
	constants.ActionStationUpdate: {
		constants.RoleAdmin,
		constants.RoleManager,
	},
	constants.ActionStationDelete: {
		constants.RoleAdmin,
		constants.RoleManager,
	},
	constants.ActionInventoryManage: {
		constants.RoleAdmin,
		constants.RoleManager,
	},
	constants.ActionReservationCreate: {
		constants.RoleAdmin,
		constants.RoleManager,
		constants.RoleVolunteer,
		constants.RoleVictim,
	},
	constants.ActionReservationView: {
		constants.RoleAdmin,
		constants.RoleManager,
		constants.RoleVolunteer,
		constants.RoleVictim,
	},
}

// Allowed 判断角色是否允许执行动作
func Allowed(role, action string) bool {
	roles, ok := actionPolicy[action]
	if !ok {
		return false
	}
	for _, allowed := range roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// IsAdmin 判断是否管理员
func IsAdmin(role string) bool {
	return role == constants.RoleAdmin
}

// OwnsStation 判断操作者是否为站点管理员本人
func OwnsStation(actorID uint, station *models.SupplyStation) bool {
	return station != nil && station.ManagerID != 0 && station.ManagerID == actorID
}

// CanManageStation 管理员或站点归属管理员可管理站点
func CanManageStation(actorID uint, role string, station *models.SupplyStation) bool {
	if IsAdmin(role) {
		return true
	}
	return OwnsStation(actorID, station)
}

// CanEditReservation 管理员或预约发起人可编辑预约
func CanEditReservation(actorID uint, role string, reservation *models.SupplyReservation) bool {
	if IsAdmin(role) {
		return true
	}
	return reservation != nil && reservation.RequesterID == actorID
}

// CanConfirmReservation 管理员或站点归属管理员可确认预约
func CanConfirmReservation(actorID uint, role string, station *models.SupplyStation) bool {
	return CanManageStation(actorID, role, station)
}

// CanTransitionReservation 管理员、发起人或站点归属管理员可推进状态
func CanTransitionReservation(actorID uint, role string, reservation *models.SupplyReservation, station *models.SupplyStation) bool {
	if CanEditReservation(actorID, role, reservation) {
		return true
	}
	return OwnsStation(actorID, station)
}

// CanViewReservation 可见性：管理员全量；站点管理员可见名下站点与本人预约；其他人仅本人
func CanViewReservation(actorID uint, role string, reservation *models.SupplyReservation, station *models.SupplyStation) bool {
	if IsAdmin(role) {
		return true
	}
	if reservation != nil && reservation.RequesterID == actorID {
		return true
	}
	return OwnsStation(actorID, station)
}
