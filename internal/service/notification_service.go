package service

import (
	"github.com/relief-next/internal/logger"
	"github.com/relief-next/internal/models"
	"github.com/relief-next/internal/queue"
)

// NotificationService 预约事件通知服务
// 通知是尽力而为的旁路：入队失败只记日志，绝不向调用方传播。
type NotificationService struct {
	queueClient *queue.Client
}

// NewNotificationService 创建通知服务
func NewNotificationService(queueClient *queue.Client) *NotificationService {
	return &NotificationService{queueClient: queueClient}
}

// NotifyReservationEvent 推送预约事件通知给指定收件人
func (s *NotificationService) NotifyReservationEvent(recipientID uint, event string, reservation *models.SupplyReservation) {
	if s == nil || reservation == nil || recipientID == 0 {
		return
	}
	payload := queue.ReservationNotificationPayload{
		RecipientID:   recipientID,
		Event:         event,
		ReservationID: reservation.ID,
		StationID:     reservation.StationID,
		Status:        reservation.Status,
	}
	if err := s.queueClient.EnqueueReservationNotification(payload); err != nil {
		logger.Warnw("reservation_notification_enqueue_failed",
			"error", err,
			"event", event,
			"reservation_id", reservation.ID,
			"recipient_id", recipientID,
		)
	}
}
