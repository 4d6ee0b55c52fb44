package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/relief-next/internal/logger"
	"github.com/relief-next/internal/provider"
	"github.com/relief-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 队列任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(container *provider.Container) *Consumer {
	return &Consumer{Container: container}
}

// Register 注册任务处理函数
func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskReservationNotification, c.handleReservationNotification)
}

// handleReservationNotification 投递预约事件通知
// 收件人缺失或已停用时任务按成功结束，不做重试。
func (c *Consumer) handleReservationNotification(ctx context.Context, task *asynq.Task) error {
	var payload queue.ReservationNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal reservation notification payload: %w", err)
	}

	recipient, err := c.UserRepo.GetByID(payload.RecipientID)
	if err != nil {
		return fmt.Errorf("load notification recipient %d: %w", payload.RecipientID, err)
	}
	if recipient == nil || !recipient.IsActive {
		logger.Warnw("reservation_notification_recipient_unavailable",
			"recipient_id", payload.RecipientID,
			"reservation_id", payload.ReservationID,
			"event", payload.Event,
		)
		return nil
	}

	logger.Infow("reservation_notification_delivered",
		"recipient_id", recipient.ID,
		"recipient_email", recipient.Email,
		"event", payload.Event,
		"reservation_id", payload.ReservationID,
		"station_id", payload.StationID,
		"status", payload.Status,
	)
	return nil
}
