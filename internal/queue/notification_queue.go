package queue

import (
	"context"

	"community-pulse/internal/model"
)

type Delivery struct {
	Data *model.Notification
	Ack  func()
	Nack func(requeue bool)
}

type NotificationQueue interface {
	// 發送通知到隊列
	PublishNotification(ctx context.Context, n *model.Notification) error
	// 訂閱通知隊列
	SubscribeNotifications(ctx context.Context) (<-chan Delivery, error)
}

type NotificationQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.Notification
}

func NewNotificationQueue(bufferSize int) NotificationQueue {
	return &NotificationQueueImpl{
		ch: make(chan *model.Notification, bufferSize),
	}
}

func (q *NotificationQueueImpl) PublishNotification(ctx context.Context, n *model.Notification) error {
	// 模擬 MQ 發送
	q.ch <- n
	return nil
}

func (q *NotificationQueueImpl) SubscribeNotifications(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-q.ch:
				if !ok {
					return
				}

				// 將原始 Notification 包裝成 Delivery 格式給 Worker
				out <- Delivery{
					Data: n,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- n // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}
