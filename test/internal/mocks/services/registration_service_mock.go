package services

import (
	"context"

	"community-pulse/internal/model"

	"github.com/stretchr/testify/mock"
)

type RegistrationServiceMock struct {
	mock.Mock
}

func NewRegistrationServiceMock() *RegistrationServiceMock {
	return &RegistrationServiceMock{}
}

func (m *RegistrationServiceMock) GetStatus(ctx context.Context, eventID, userID int) (*model.RegistrationStatusResponse, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistrationStatusResponse), args.Error(1)
}

func (m *RegistrationServiceMock) MarkInterest(ctx context.Context, eventID, userID int) (*model.RegistrationStatusResponse, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistrationStatusResponse), args.Error(1)
}

func (m *RegistrationServiceMock) ConfirmRegistration(ctx context.Context, eventID, userID int, attendees []string) (*model.RegistrationStatusResponse, error) {
	args := m.Called(ctx, eventID, userID, attendees)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistrationStatusResponse), args.Error(1)
}

func (m *RegistrationServiceMock) CancelRegistration(ctx context.Context, eventID, userID int) (*model.RegistrationStatusResponse, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegistrationStatusResponse), args.Error(1)
}

func (m *RegistrationServiceMock) ListByUserID(ctx context.Context, userID int) ([]*model.RegistrationResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RegistrationResponse), args.Error(1)
}
