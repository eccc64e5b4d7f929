package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"medclaim/internal/domain"
)

// MockClaimRepo is a mock implementation of port.ClaimRepository.
type MockClaimRepo struct {
	mock.Mock
}

func (m *MockClaimRepo) Create(ctx context.Context, rec *domain.ClaimRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockClaimRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClaimRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimRecord), args.Error(1)
}

func (m *MockClaimRepo) List(ctx context.Context, offset, limit int) ([]domain.ClaimRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ClaimRecord), args.Int(1), args.Error(2)
}

func (m *MockClaimRepo) ListAll(ctx context.Context) ([]domain.ClaimRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClaimRecord), args.Error(1)
}

func (m *MockClaimRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
