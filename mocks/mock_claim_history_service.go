package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"medclaim/internal/domain"
)

// MockClaimHistoryService is a mock implementation of service.ClaimHistoryService.
type MockClaimHistoryService struct {
	mock.Mock
}

func (m *MockClaimHistoryService) Get(ctx context.Context, id uuid.UUID) (*domain.ClaimRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimRecord), args.Error(1)
}

func (m *MockClaimHistoryService) List(ctx context.Context, offset, limit int) ([]domain.ClaimRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ClaimRecord), args.Int(1), args.Error(2)
}

func (m *MockClaimHistoryService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, format, w)
	return args.Error(0)
}
