package queue

import (
	"encoding/json"

	"github.com/relief-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskReservationNotification 预约通知任务
	TaskReservationNotification = constants.TaskReservationNotification
)

// ReservationNotificationPayload 预约通知任务载荷
type ReservationNotificationPayload struct {
	RecipientID   uint   `json:"recipient_id"`
	Event         string `json:"event"`
	ReservationID uint   `json:"reservation_id"`
	StationID     uint   `json:"station_id"`
	Status        string `json:"status"`
}

// NewReservationNotificationTask 创建预约通知任务
func NewReservationNotificationTask(payload ReservationNotificationPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReservationNotification, body), nil
}
