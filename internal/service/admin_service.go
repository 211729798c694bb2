package service

import (
	"context"

	"community-pulse/internal/model"
	"community-pulse/internal/repository"
	apperrors "community-pulse/pkg/app_errors"
)

type AdminService interface {
	ListPendingEvents(ctx context.Context) ([]*model.Event, error)
	ApproveEvent(ctx context.Context, id int) error
	RejectEvent(ctx context.Context, id int) error
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUserFlags(ctx context.Context, id int, params model.AdminUserUpdateParams) (*model.User, error)
	ListEventsByOrganizerID(ctx context.Context, organizerID int) ([]*model.Event, error)
}

type AdminServiceImpl struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
}

func NewAdminService(eventRepo repository.EventRepository, userRepo repository.UserRepository) AdminService {
	return &AdminServiceImpl{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

func (s *AdminServiceImpl) ListPendingEvents(ctx context.Context) ([]*model.Event, error) {
	return s.eventRepo.ListPending(ctx)
}

func (s *AdminServiceImpl) ApproveEvent(ctx context.Context, id int) error {
	return s.eventRepo.SetApproval(ctx, id, true)
}

// RejectEvent 駁回即刪除，與審核通過是不可並存的結果
func (s *AdminServiceImpl) RejectEvent(ctx context.Context, id int) error {
	return s.eventRepo.Delete(ctx, id)
}

func (s *AdminServiceImpl) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *AdminServiceImpl) UpdateUserFlags(ctx context.Context, id int, params model.AdminUserUpdateParams) (*model.User, error) {
	if params.IsAdmin == nil && params.IsVerifiedOrganizer == nil && params.IsBanned == nil {
		return nil, apperrors.ErrInvalidInput
	}
	return s.userRepo.UpdateFlags(ctx, id, params)
}

func (s *AdminServiceImpl) ListEventsByOrganizerID(ctx context.Context, organizerID int) ([]*model.Event, error) {
	return s.eventRepo.ListByOrganizerID(ctx, organizerID)
}
