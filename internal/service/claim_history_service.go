package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"medclaim/internal/domain"
	"medclaim/internal/export"
	"medclaim/internal/port"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ClaimHistoryService exposes processed claims for review and reporting.
type ClaimHistoryService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.ClaimRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.ClaimRecord, int, error)
	Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error
}

type claimHistoryService struct {
	claimRepo port.ClaimRepository
}

// NewClaimHistoryService creates a new ClaimHistoryService implementation.
func NewClaimHistoryService(claimRepo port.ClaimRepository) ClaimHistoryService {
	return &claimHistoryService{claimRepo: claimRepo}
}

func (s *claimHistoryService) Get(ctx context.Context, id uuid.UUID) (*domain.ClaimRecord, error) {
	return s.claimRepo.GetByID(ctx, id)
}

// NormalizePage clamps pagination input to the window List actually serves.
func NormalizePage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return offset, limit
}

func (s *claimHistoryService) List(ctx context.Context, offset, limit int) ([]domain.ClaimRecord, int, error) {
	offset, limit = NormalizePage(offset, limit)
	return s.claimRepo.List(ctx, offset, limit)
}

func (s *claimHistoryService) Export(ctx context.Context, format domain.ExportFormat, w io.Writer) error {
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedExportFormat, format)
	}
	recs, err := s.claimRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("listing claims: %w", err)
	}
	return export.Write(w, format, recs)
}
