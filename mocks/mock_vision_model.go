package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"passportx/internal/domain"
)

// MockVisionModel is a mock implementation of port.VisionModel.
type MockVisionModel struct {
	mock.Mock
}

func (m *MockVisionModel) Extract(ctx context.Context, req *domain.ExtractionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockVisionModel) Model() string {
	return "mock-vision-model"
}
