package service

import (
	"context"

	"community-pulse/internal/model"
	"community-pulse/internal/repository"
)

type NotificationService interface {
	ListUnread(ctx context.Context, userID int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id, userID int) error
}

type NotificationServiceImpl struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &NotificationServiceImpl{repo: repo}
}

func (s *NotificationServiceImpl) ListUnread(ctx context.Context, userID int) ([]*model.Notification, error) {
	return s.repo.ListUnreadByUserID(ctx, userID)
}

func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id, userID int) error {
	return s.repo.MarkRead(ctx, id, userID)
}
