package service

import (
	"fmt"

	"github.com/relief-next/internal/constants"
)

// 预约状态转移表。
// pending → confirmed → picked_up → delivered；pending/confirmed 可取消。
// delivered 与 cancelled 为终态。
var allowedTransitions = map[string]map[string]bool{
	constants.ReservationStatusPending: {
		constants.ReservationStatusConfirmed: true,
		constants.ReservationStatusCancelled: true,
	},
	constants.ReservationStatusConfirmed: {
		constants.ReservationStatusPickedUp:  true,
		constants.ReservationStatusCancelled: true,
	},
	constants.ReservationStatusPickedUp: {
		constants.ReservationStatusDelivered: true,
	},
}

// 状态转移各自写入的时间戳列；取消不写时间戳。
var transitionTimestampColumns = map[string]string{
	constants.ReservationStatusConfirmed: "confirmed_at",
	constants.ReservationStatusPickedUp:  "picked_up_at",
	constants.ReservationStatusDelivered: "delivered_at",
}

// isKnownReservationStatus 判断状态值是否合法
func isKnownReservationStatus(status string) bool {
	switch status {
	case constants.ReservationStatusPending,
		constants.ReservationStatusConfirmed,
		constants.ReservationStatusPickedUp,
		constants.ReservationStatusDelivered,
		constants.ReservationStatusCancelled:
		return true
	}
	return false
}

// validateTransition 校验状态转移合法性
// 终态上的任何转移报冲突，其余非法转移报校验错误并点名两端状态。
func validateTransition(from, to string) error {
	if !isKnownReservationStatus(to) {
		return fmt.Errorf("%w: unknown status %q", ErrIllegalTransition, to)
	}
	if from == constants.ReservationStatusDelivered || from == constants.ReservationStatusCancelled {
		return fmt.Errorf("%w: reservation is %s", ErrReservationTerminal, from)
	}
	if !allowedTransitions[from][to] {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}
	return nil
}
