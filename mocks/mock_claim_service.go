package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medclaim/internal/domain"
)

// MockClaimService is a mock implementation of service.ClaimService. It also satisfies
// ui.Submitter.
type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) ProcessClaim(ctx context.Context, files []domain.ClaimDocument) (*domain.ProcessingResult, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessingResult), args.Error(1)
}
