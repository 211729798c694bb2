package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"community-pulse/internal/cache"
	"community-pulse/internal/model"
	"community-pulse/internal/queue"
	"community-pulse/internal/repository"
	"community-pulse/internal/storage"
	"community-pulse/internal/validation"
	apperrors "community-pulse/pkg/app_errors"
	"community-pulse/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateEventParams 建立活動參數，時間欄位為 ISO-8601 字串，由排程驗證器把關
type CreateEventParams struct {
	Title             string
	Description       string
	Location          string
	Category          string
	StartDate         string
	EndDate           string
	RegistrationStart string
	RegistrationEnd   string
	Image             *multipart.FileHeader
}

// UpdateEventInput 更新活動參數，nil 表示不異動
type UpdateEventInput struct {
	Title             *string
	Description       *string
	Location          *string
	Category          *string
	StartDate         *string
	EndDate           *string
	RegistrationStart *string
	RegistrationEnd   *string
	Image             *multipart.FileHeader
}

type EventService interface {
	List(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error)
	Search(ctx context.Context, query string) ([]*model.Event, error)
	GetDetails(ctx context.Context, id int) (*model.EventDetails, error)
	ListByOrganizerID(ctx context.Context, organizerID int) ([]*model.Event, error)
	ListRegistrations(ctx context.Context, user *model.User, eventID int) ([]*model.RegistrationResponse, error)
	Create(ctx context.Context, organizer *model.User, params CreateEventParams) (*model.Event, error)
	Update(ctx context.Context, user *model.User, id int, input UpdateEventInput) (*model.Event, error)
	Delete(ctx context.Context, user *model.User, id int) error
}

type EventServiceImpl struct {
	repo       repository.EventRepository
	regRepo    repository.RegistrationRepository
	attendance cache.RedisAttendanceManager
	queue      queue.NotificationQueue
	images     storage.ImageStore
}

func NewEventService(
	repo repository.EventRepository,
	regRepo repository.RegistrationRepository,
	attendance cache.RedisAttendanceManager,
	notificationQueue queue.NotificationQueue,
	images storage.ImageStore,
) EventService {
	return &EventServiceImpl{
		repo:       repo,
		regRepo:    regRepo,
		attendance: attendance,
		queue:      notificationQueue,
		images:     images,
	}
}

func (s *EventServiceImpl) List(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error) {
	return s.repo.List(ctx, filter)
}

func (s *EventServiceImpl) Search(ctx context.Context, query string) ([]*model.Event, error) {
	return s.repo.Search(ctx, query)
}

func (s *EventServiceImpl) GetDetails(ctx context.Context, id int) (*model.EventDetails, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.attendance.GetCount(ctx, id)
	if err != nil {
		logger.WithComponent("service").Warn("attendance cache read failed", zap.Int("event_id", id), zap.Error(err))
		count = cache.CountMiss
	}
	if count == cache.CountMiss {
		count, err = s.regRepo.CountAttendees(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.attendance.SetCount(ctx, id, count); err != nil {
			logger.WithComponent("service").Warn("attendance cache backfill failed", zap.Int("event_id", id), zap.Error(err))
		}
	}

	return &model.EventDetails{Event: *event, AttendeesCount: count}, nil
}

func (s *EventServiceImpl) ListByOrganizerID(ctx context.Context, organizerID int) ([]*model.Event, error) {
	return s.repo.ListByOrganizerID(ctx, organizerID)
}

func (s *EventServiceImpl) ListRegistrations(ctx context.Context, user *model.User, eventID int) ([]*model.RegistrationResponse, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !user.CanManageEvent(event) {
		return nil, apperrors.ErrForbidden
	}

	regs, err := s.regRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.RegistrationResponse, 0, len(regs))
	for _, reg := range regs {
		responses = append(responses, reg.ToResponse())
	}
	return responses, nil
}

func (s *EventServiceImpl) Create(ctx context.Context, organizer *model.User, params CreateEventParams) (*model.Event, error) {
	fieldErrs := make(map[string]string)

	requireText(fieldErrs, "title", params.Title)
	requireText(fieldErrs, "description", params.Description)
	requireText(fieldErrs, "location", params.Location)
	requireText(fieldErrs, "category", params.Category)
	requireText(fieldErrs, validation.FieldStartDate, params.StartDate)
	requireText(fieldErrs, validation.FieldEndDate, params.EndDate)
	requireText(fieldErrs, validation.FieldRegistrationStart, params.RegistrationStart)
	requireText(fieldErrs, validation.FieldRegistrationEnd, params.RegistrationEnd)

	category := model.Category(params.Category)
	if params.Category != "" && !category.IsValid() {
		fieldErrs["category"] = "invalid category"
	}

	schedule := validation.Schedule{
		StartDate:         params.StartDate,
		EndDate:           params.EndDate,
		RegistrationStart: params.RegistrationStart,
		RegistrationEnd:   params.RegistrationEnd,
	}
	mergeFieldErrors(fieldErrs, validation.ValidateSchedule(schedule, time.Now().UTC()))

	if len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError(fieldErrs)
	}

	start, _ := validation.ParseDateTime(params.StartDate)
	end, _ := validation.ParseDateTime(params.EndDate)
	regStart, _ := validation.ParseDateTime(params.RegistrationStart)
	regEnd, _ := validation.ParseDateTime(params.RegistrationEnd)

	event := &model.Event{
		EventID:           uuid.New(),
		Title:             params.Title,
		Description:       params.Description,
		Location:          params.Location,
		Category:          category,
		StartDate:         start,
		EndDate:           end,
		RegistrationStart: regStart,
		RegistrationEnd:   regEnd,
		OrganizerID:       organizer.ID,
		// 已驗證的主辦者免審核直接上線
		IsApproved: organizer.IsVerifiedOrganizer,
	}

	if params.Image != nil {
		path, err := s.images.Save(params.Image)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		event.ImagePath = &path
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		if event.ImagePath != nil {
			_ = s.images.Remove(*event.ImagePath)
		}
		return nil, err
	}

	return created, nil
}

func (s *EventServiceImpl) Update(ctx context.Context, user *model.User, id int, input UpdateEventInput) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanManageEvent(event) {
		return nil, apperrors.ErrForbidden
	}

	fieldErrs := make(map[string]string)

	if input.Category != nil && !model.Category(*input.Category).IsValid() {
		fieldErrs["category"] = "invalid category"
	}

	// 以異動後的有效值跑完整的排程檢查，未異動的欄位取既有值
	schedule := validation.Schedule{
		StartDate:         effectiveDate(input.StartDate, event.StartDate),
		EndDate:           effectiveDate(input.EndDate, event.EndDate),
		RegistrationStart: effectiveDate(input.RegistrationStart, event.RegistrationStart),
		RegistrationEnd:   effectiveDate(input.RegistrationEnd, event.RegistrationEnd),
	}
	scheduleErrs := validation.ValidateSchedule(schedule, time.Now().UTC())
	if input.StartDate == nil {
		// start 未異動時不檢查「必須是未來」，否則進行中的活動無法編輯
		if scheduleErrs[validation.FieldStartDate] == "start date must be in the future" {
			delete(scheduleErrs, validation.FieldStartDate)
		}
	}
	mergeFieldErrors(fieldErrs, scheduleErrs)

	if len(fieldErrs) > 0 {
		return nil, apperrors.NewValidationError(fieldErrs)
	}

	params := model.UpdateEventParams{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
	}
	if input.Category != nil {
		category := model.Category(*input.Category)
		params.Category = &category
	}
	params.StartDate = parseOptionalDate(input.StartDate)
	params.EndDate = parseOptionalDate(input.EndDate)
	params.RegistrationStart = parseOptionalDate(input.RegistrationStart)
	params.RegistrationEnd = parseOptionalDate(input.RegistrationEnd)

	oldImagePath := event.ImagePath
	if input.Image != nil {
		path, err := s.images.Save(input.Image)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		params.ImagePath = &path
	}

	// 未驗證的主辦者改完要重新送審
	if !user.IsVerifiedOrganizer && !user.IsAdmin {
		approved := false
		params.IsApproved = &approved
	}

	if !params.HasChanges() && params.IsApproved == nil {
		return nil, apperrors.ErrInvalidInput
	}

	updated, err := s.repo.Update(ctx, id, params)
	if err != nil {
		if params.ImagePath != nil {
			_ = s.images.Remove(*params.ImagePath)
		}
		return nil, err
	}

	if params.ImagePath != nil && oldImagePath != nil {
		_ = s.images.Remove(*oldImagePath)
	}

	s.notifyRegistered(ctx, updated, "Event Updated",
		fmt.Sprintf("The event '%s' you registered for has been updated.", updated.Title),
		model.NotificationTypeUpdate)

	return updated, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, user *model.User, id int) error {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanManageEvent(event) {
		return apperrors.ErrForbidden
	}

	// 先送通知再刪除，刪除後就查不到報名名單了
	s.notifyRegistered(ctx, event, "Event Cancelled",
		fmt.Sprintf("The event '%s' has been cancelled.", event.Title),
		model.NotificationTypeCancellation)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if event.ImagePath != nil {
		if err := s.images.Remove(*event.ImagePath); err != nil {
			logger.WithComponent("service").Warn("remove event image failed", zap.String("path", *event.ImagePath), zap.Error(err))
		}
	}

	if err := s.attendance.InvalidateCount(ctx, id); err != nil {
		logger.WithComponent("service").Warn("invalidate attendance cache failed", zap.Int("event_id", id), zap.Error(err))
	}

	return nil
}

// notifyRegistered 對所有已確認報名的使用者發布通知，失敗只記錄不中斷主流程
func (s *EventServiceImpl) notifyRegistered(ctx context.Context, event *model.Event, title, message string, notificationType model.NotificationType) {
	userIDs, err := s.regRepo.ListRegisteredUserIDs(ctx, event.ID)
	if err != nil {
		logger.WithComponent("service").Warn("list registered users failed", zap.Int("event_id", event.ID), zap.Error(err))
		return
	}

	for _, userID := range userIDs {
		n := &model.Notification{
			EventID: event.ID,
			UserID:  userID,
			Title:   title,
			Message: message,
			Type:    notificationType,
		}
		if err := s.queue.PublishNotification(ctx, n); err != nil {
			logger.WithComponent("service").Warn("publish notification failed", zap.Int("user_id", userID), zap.Error(err))
		}
	}
}

func requireText(fieldErrs map[string]string, field, value string) {
	if value == "" {
		fieldErrs[field] = "required"
	}
}

// mergeFieldErrors 合併欄位錯誤，既有的錯誤優先
func mergeFieldErrors(dst, src map[string]string) {
	for field, msg := range src {
		if _, taken := dst[field]; !taken {
			dst[field] = msg
		}
	}
}

func effectiveDate(raw *string, existing time.Time) string {
	if raw != nil {
		return *raw
	}
	return existing.UTC().Format(time.RFC3339)
}

func parseOptionalDate(raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	t, err := validation.ParseDateTime(*raw)
	if err != nil {
		return nil
	}
	return &t
}
