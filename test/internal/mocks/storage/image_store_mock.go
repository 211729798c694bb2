package storage

import (
	"mime/multipart"

	"github.com/stretchr/testify/mock"
)

type ImageStoreMock struct {
	mock.Mock
}

func NewImageStoreMock() *ImageStoreMock {
	return &ImageStoreMock{}
}

func (m *ImageStoreMock) Save(file *multipart.FileHeader) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *ImageStoreMock) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}
