package service

import (
	"context"
	"fmt"
	"time"

	"community-pulse/internal/cache"
	"community-pulse/internal/model"
	"community-pulse/internal/queue"
	"community-pulse/internal/repository"
	"community-pulse/internal/validation"
	apperrors "community-pulse/pkg/app_errors"
	"community-pulse/pkg/logger"

	"go.uber.org/zap"
)

// 防重鎖的動作名稱
const (
	actionInterest = "interest"
	actionConfirm  = "confirm"
	actionCancel   = "cancel"
)

type RegistrationService interface {
	GetStatus(ctx context.Context, eventID, userID int) (*model.RegistrationStatusResponse, error)
	MarkInterest(ctx context.Context, eventID, userID int) (*model.RegistrationStatusResponse, error)
	ConfirmRegistration(ctx context.Context, eventID, userID int, attendees []string) (*model.RegistrationStatusResponse, error)
	CancelRegistration(ctx context.Context, eventID, userID int) (*model.RegistrationStatusResponse, error)
	ListByUserID(ctx context.Context, userID int) ([]*model.RegistrationResponse, error)
}

type RegistrationServiceImpl struct {
	repo       repository.RegistrationRepository
	eventRepo  repository.EventRepository
	attendance cache.RedisAttendanceManager
	guard      cache.ActionGuard
	queue      queue.NotificationQueue
}

func NewRegistrationService(
	repo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	attendance cache.RedisAttendanceManager,
	guard cache.ActionGuard,
	notificationQueue queue.NotificationQueue,
) RegistrationService {
	return &RegistrationServiceImpl{
		repo:       repo,
		eventRepo:  eventRepo,
		attendance: attendance,
		guard:      guard,
		queue:      notificationQueue,
	}
}

// GetStatus 查詢 (user, event) 的報名狀態，沒有紀錄時回傳 none
func (s *RegistrationServiceImpl) GetStatus(ctx context.Context, eventID, userID int) (*model.RegistrationStatusResponse, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	reg, err := s.repo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if err == apperrors.ErrRegistrationNotFound {
			return &model.RegistrationStatusResponse{Status: model.RegistrationStatusNone}, nil
		}
		return nil, err
	}

	return &model.RegistrationStatusResponse{
		Status:       reg.Status,
		Registration: reg.ToResponse(),
	}, nil
}

// MarkInterest none → interested。活動必須已核准且在報名時段內。
func (s *RegistrationServiceImpl) MarkInterest(ctx context.Context, eventID, userID int) (*model.RegistrationStatusResponse, error) {
	acquired, err := s.guard.Acquire(ctx, userID, eventID, actionInterest)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, apperrors.ErrDuplicateSubmission
	}
	defer s.releaseGuard(ctx, userID, eventID, actionInterest)

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.IsApproved {
		return nil, apperrors.ErrEventNotApproved
	}
	if !event.RegistrationWindowOpen(time.Now().UTC()) {
		return nil, apperrors.ErrRegistrationClosed
	}

	existing, err := s.repo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil && err != apperrors.ErrRegistrationNotFound {
		return nil, err
	}
	if existing != nil {
		// 已有紀錄表示 interested 或 registered，重複標記是呼叫端錯誤
		return nil, apperrors.ErrAlreadyRegistered
	}

	reg := &model.Registration{
		EventID: eventID,
		UserID:  userID,
		Status:  model.RegistrationStatusInterested,
	}
	created, err := s.repo.Create(ctx, reg)
	if err != nil {
		return nil, err
	}

	return &model.RegistrationStatusResponse{
		Status:       created.Status,
		Registration: created.ToResponse(),
	}, nil
}

// ConfirmRegistration interested → registered。
// 名單在任何 I/O 之前先過濾與驗證 (fail fast)。
func (s *RegistrationServiceImpl) ConfirmRegistration(ctx context.Context, eventID, userID int, attendees []string) (*model.RegistrationStatusResponse, error) {
	filtered := validation.FilterAttendees(attendees)
	if err := validation.ValidateAttendees(filtered); err != nil {
		return nil, err
	}

	acquired, err := s.guard.Acquire(ctx, userID, eventID, actionConfirm)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, apperrors.ErrDuplicateSubmission
	}
	defer s.releaseGuard(ctx, userID, eventID, actionConfirm)

	reg, err := s.repo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if err == apperrors.ErrRegistrationNotFound {
			return nil, apperrors.ErrInvalidTransition
		}
		return nil, err
	}
	if !reg.Status.CanTransitionTo(model.RegistrationStatusRegistered) {
		return nil, apperrors.ErrInvalidTransition
	}

	confirmed, err := s.repo.Confirm(ctx, reg.ID, filtered)
	if err != nil {
		return nil, err
	}

	if err := s.attendance.AdjustCount(ctx, eventID, len(filtered)); err != nil {
		logger.WithComponent("service").Warn("adjust attendance cache failed", zap.Int("event_id", eventID), zap.Error(err))
	}

	s.publishReminder(ctx, eventID, userID)

	return &model.RegistrationStatusResponse{
		Status:       confirmed.Status,
		Registration: confirmed.ToResponse(),
	}, nil
}

// CancelRegistration registered → none，移除報名紀錄
func (s *RegistrationServiceImpl) CancelRegistration(ctx context.Context, eventID, userID int) (*model.RegistrationStatusResponse, error) {
	acquired, err := s.guard.Acquire(ctx, userID, eventID, actionCancel)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, apperrors.ErrDuplicateSubmission
	}
	defer s.releaseGuard(ctx, userID, eventID, actionCancel)

	reg, err := s.repo.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if err == apperrors.ErrRegistrationNotFound {
			return nil, apperrors.ErrInvalidTransition
		}
		return nil, err
	}
	if !reg.Status.CanTransitionTo(model.RegistrationStatusNone) {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.repo.Delete(ctx, reg.ID); err != nil {
		return nil, err
	}

	if err := s.attendance.AdjustCount(ctx, eventID, -reg.NumberOfAttendees()); err != nil {
		logger.WithComponent("service").Warn("adjust attendance cache failed", zap.Int("event_id", eventID), zap.Error(err))
	}

	return &model.RegistrationStatusResponse{Status: model.RegistrationStatusNone}, nil
}

func (s *RegistrationServiceImpl) ListByUserID(ctx context.Context, userID int) ([]*model.RegistrationResponse, error) {
	regs, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		responses = append(responses, reg.ToResponse())
	}
	return responses, nil
}

// publishReminder 活動開始前一天的提醒，失敗只記錄
func (s *RegistrationServiceImpl) publishReminder(ctx context.Context, eventID, userID int) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		logger.WithComponent("service").Warn("load event for reminder failed", zap.Int("event_id", eventID), zap.Error(err))
		return
	}

	if !event.StartDate.Add(-24 * time.Hour).After(time.Now().UTC()) {
		return
	}

	n := &model.Notification{
		EventID: eventID,
		UserID:  userID,
		Title:   "Event Reminder",
		Message: fmt.Sprintf("Reminder: The event '%s' is tomorrow!", event.Title),
		Type:    model.NotificationTypeReminder,
	}
	if err := s.queue.PublishNotification(ctx, n); err != nil {
		logger.WithComponent("service").Warn("publish reminder failed", zap.Int("user_id", userID), zap.Error(err))
	}
}

func (s *RegistrationServiceImpl) releaseGuard(ctx context.Context, userID, eventID int, action string) {
	if err := s.guard.Release(ctx, userID, eventID, action); err != nil {
		logger.WithComponent("service").Warn("release action guard failed",
			zap.Int("user_id", userID), zap.Int("event_id", eventID), zap.String("action", action), zap.Error(err))
	}
}
