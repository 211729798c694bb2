package repositories

import (
	"context"

	"community-pulse/internal/model"

	"github.com/stretchr/testify/mock"
)

type NotificationRepositoryMock struct {
	mock.Mock
}

func NewNotificationRepositoryMock() *NotificationRepositoryMock {
	return &NotificationRepositoryMock{}
}

func (m *NotificationRepositoryMock) Create(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *NotificationRepositoryMock) ListUnreadByUserID(ctx context.Context, userID int) ([]*model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Notification), args.Error(1)
}

func (m *NotificationRepositoryMock) MarkRead(ctx context.Context, id, userID int) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
