package services

import (
	"context"

	"community-pulse/internal/model"
	"community-pulse/internal/service"

	"github.com/stretchr/testify/mock"
)

type EventServiceMock struct {
	mock.Mock
}

func NewEventServiceMock() *EventServiceMock {
	return &EventServiceMock{}
}

func (m *EventServiceMock) List(ctx context.Context, filter model.ListEventsFilter) ([]*model.Event, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventServiceMock) Search(ctx context.Context, query string) ([]*model.Event, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventServiceMock) GetDetails(ctx context.Context, id int) (*model.EventDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventDetails), args.Error(1)
}

func (m *EventServiceMock) ListByOrganizerID(ctx context.Context, organizerID int) ([]*model.Event, error) {
	args := m.Called(ctx, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Event), args.Error(1)
}

func (m *EventServiceMock) ListRegistrations(ctx context.Context, user *model.User, eventID int) ([]*model.RegistrationResponse, error) {
	args := m.Called(ctx, user, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RegistrationResponse), args.Error(1)
}

func (m *EventServiceMock) Create(ctx context.Context, organizer *model.User, params service.CreateEventParams) (*model.Event, error) {
	args := m.Called(ctx, organizer, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) Update(ctx context.Context, user *model.User, id int, input service.UpdateEventInput) (*model.Event, error) {
	args := m.Called(ctx, user, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *EventServiceMock) Delete(ctx context.Context, user *model.User, id int) error {
	args := m.Called(ctx, user, id)
	return args.Error(0)
}
