package services

import (
	"context"

	"community-pulse/internal/model"

	"github.com/stretchr/testify/mock"
)

type NotificationServiceMock struct {
	mock.Mock
}

func NewNotificationServiceMock() *NotificationServiceMock {
	return &NotificationServiceMock{}
}

func (m *NotificationServiceMock) ListUnread(ctx context.Context, userID int) ([]*model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Notification), args.Error(1)
}

func (m *NotificationServiceMock) MarkRead(ctx context.Context, id, userID int) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
