package cache

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type ActionGuardMock struct {
	mock.Mock
}

func NewActionGuardMock() *ActionGuardMock {
	return &ActionGuardMock{}
}

func (m *ActionGuardMock) Acquire(ctx context.Context, userID, eventID int, action string) (bool, error) {
	args := m.Called(ctx, userID, eventID, action)
	return args.Bool(0), args.Error(1)
}

func (m *ActionGuardMock) Release(ctx context.Context, userID, eventID int, action string) error {
	args := m.Called(ctx, userID, eventID, action)
	return args.Error(0)
}
