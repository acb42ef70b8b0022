package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateAppKey(token string) error {
	args := m.Called(token)
	return args.Error(0)
}
