package repositories

import (
	"context"

	"community-pulse/internal/model"

	"github.com/stretchr/testify/mock"
)

type RegistrationRepositoryMock struct {
	mock.Mock
}

func NewRegistrationRepositoryMock() *RegistrationRepositoryMock {
	return &RegistrationRepositoryMock{}
}

func (m *RegistrationRepositoryMock) Create(ctx context.Context, reg *model.Registration) (*model.Registration, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *RegistrationRepositoryMock) FindByEventAndUser(ctx context.Context, eventID, userID int) (*model.Registration, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *RegistrationRepositoryMock) ListByEventID(ctx context.Context, eventID int) ([]*model.Registration, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *RegistrationRepositoryMock) ListByUserID(ctx context.Context, userID int) ([]*model.Registration, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Registration), args.Error(1)
}

func (m *RegistrationRepositoryMock) ListRegisteredUserIDs(ctx context.Context, eventID int) ([]int, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *RegistrationRepositoryMock) Confirm(ctx context.Context, id int, attendees []string) (*model.Registration, error) {
	args := m.Called(ctx, id, attendees)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Registration), args.Error(1)
}

func (m *RegistrationRepositoryMock) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RegistrationRepositoryMock) CountAttendees(ctx context.Context, eventID int) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}
