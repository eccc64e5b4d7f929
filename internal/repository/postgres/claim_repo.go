package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

const claimColumns = "id, status, reason, document_count, file_names, result, created_at"

type claimRepo struct {
	db *sqlx.DB
}

// NewClaimRepo creates a new PostgreSQL-backed ClaimRepository.
func NewClaimRepo(db *sqlx.DB) port.ClaimRepository {
	return &claimRepo{db: db}
}

func (r *claimRepo) Create(ctx context.Context, rec *domain.ClaimRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO claims (` + claimColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Status, rec.Reason, rec.DocumentCount, rec.FileNames, []byte(rec.Result), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("claimRepo.Create: %w", err)
	}
	return nil
}

func (r *claimRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ClaimRecord, error) {
	var rec domain.ClaimRecord
	err := r.db.GetContext(ctx, &rec, "SELECT "+claimColumns+" FROM claims WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, fmt.Errorf("claimRepo.GetByID: %w", err)
	}
	return &rec, nil
}

func (r *claimRepo) List(ctx context.Context, offset, limit int) ([]domain.ClaimRecord, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM claims"); err != nil {
		return nil, 0, fmt.Errorf("claimRepo.List count: %w", err)
	}

	recs := []domain.ClaimRecord{}
	err := r.db.SelectContext(ctx, &recs,
		"SELECT "+claimColumns+" FROM claims ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("claimRepo.List: %w", err)
	}
	return recs, total, nil
}

func (r *claimRepo) ListAll(ctx context.Context) ([]domain.ClaimRecord, error) {
	recs := []domain.ClaimRecord{}
	err := r.db.SelectContext(ctx, &recs, "SELECT "+claimColumns+" FROM claims ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("claimRepo.ListAll: %w", err)
	}
	return recs, nil
}

func (r *claimRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
