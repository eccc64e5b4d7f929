package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medclaim/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendClaimNotification(ctx context.Context, toEmail string, n port.ClaimNotification) error {
	args := m.Called(ctx, toEmail, n)
	return args.Error(0)
}
