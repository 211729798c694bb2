package worker

import (
	"context"

	"community-pulse/internal/queue"
	"community-pulse/internal/repository"
	"community-pulse/pkg/logger"

	"go.uber.org/zap"
)

type NotificationWorker interface {
	// 訂閱通知隊列並持久化
	Start(ctx context.Context) error
}

type NotificationWorkerImpl struct {
	repository repository.NotificationRepository
	queue      queue.NotificationQueue
}

func NewNotificationWorker(repository repository.NotificationRepository, queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		repository: repository,
		queue:      queue,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeNotifications(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			// 把隊列消息寫進資料庫，失敗則 Nack 等待重試
			_, err := w.repository.Create(ctx, msg.Data)
			if err != nil {
				logger.WithComponent("worker").Warn("persist notification failed, will retry",
					zap.Int("user_id", msg.Data.UserID), zap.Int("event_id", msg.Data.EventID), zap.Error(err))
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
