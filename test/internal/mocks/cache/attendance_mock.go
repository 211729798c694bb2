package cache

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type AttendanceManagerMock struct {
	mock.Mock
}

func NewAttendanceManagerMock() *AttendanceManagerMock {
	return &AttendanceManagerMock{}
}

func (m *AttendanceManagerMock) GetCount(ctx context.Context, eventID int) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *AttendanceManagerMock) SetCount(ctx context.Context, eventID int, count int) error {
	args := m.Called(ctx, eventID, count)
	return args.Error(0)
}

func (m *AttendanceManagerMock) AdjustCount(ctx context.Context, eventID int, delta int) error {
	args := m.Called(ctx, eventID, delta)
	return args.Error(0)
}

func (m *AttendanceManagerMock) InvalidateCount(ctx context.Context, eventID int) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}
