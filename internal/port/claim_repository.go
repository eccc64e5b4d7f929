package port

import (
	"context"

	"github.com/google/uuid"

	"medclaim/internal/domain"
)

// ClaimRepository persists processed claims.
type ClaimRepository interface {
	Create(ctx context.Context, rec *domain.ClaimRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ClaimRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.ClaimRecord, int, error)
	ListAll(ctx context.Context) ([]domain.ClaimRecord, error)
	Ping(ctx context.Context) error
}
