package queue

import (
	"context"

	"community-pulse/internal/model"
	"community-pulse/internal/queue"

	"github.com/stretchr/testify/mock"
)

type NotificationQueueMock struct {
	mock.Mock
}

func NewNotificationQueueMock() *NotificationQueueMock {
	return &NotificationQueueMock{}
}

func (m *NotificationQueueMock) PublishNotification(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationQueueMock) SubscribeNotifications(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}
