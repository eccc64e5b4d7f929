// Package memory holds an in-process ClaimRepository used when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

type claimRepo struct {
	mu     sync.RWMutex
	claims map[uuid.UUID]domain.ClaimRecord
}

// NewClaimRepo creates an in-memory ClaimRepository. Records are lost on restart.
func NewClaimRepo() port.ClaimRepository {
	return &claimRepo{claims: make(map[uuid.UUID]domain.ClaimRecord)}
}

func (r *claimRepo) Create(_ context.Context, rec *domain.ClaimRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.claims[rec.ID] = clone(rec)
	return nil
}

func (r *claimRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.ClaimRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.claims[id]
	if !ok {
		return nil, domain.ErrClaimNotFound
	}
	out := clone(&rec)
	return &out, nil
}

func (r *claimRepo) List(ctx context.Context, offset, limit int) ([]domain.ClaimRecord, int, error) {
	all, _ := r.ListAll(ctx)
	total := len(all)
	if offset >= total {
		return []domain.ClaimRecord{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// ListAll returns every claim, newest first.
func (r *claimRepo) ListAll(_ context.Context) ([]domain.ClaimRecord, error) {
	r.mu.RLock()
	out := make([]domain.ClaimRecord, 0, len(r.claims))
	for _, rec := range r.claims {
		out = append(out, clone(&rec))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *claimRepo) Ping(context.Context) error { return nil }

func clone(rec *domain.ClaimRecord) domain.ClaimRecord {
	c := *rec
	c.FileNames = append(domain.StringList(nil), rec.FileNames...)
	c.Result = append([]byte(nil), rec.Result...)
	return c
}
