package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medclaim/internal/domain"
	"medclaim/internal/repository/memory"
)

func TestClaimRepo_CreateAndGet(t *testing.T) {
	repo := memory.NewClaimRepo()
	ctx := context.Background()

	rec := &domain.ClaimRecord{Status: domain.ClaimStatusApproved, FileNames: domain.StringList{"a.pdf"}}
	require.NoError(t, repo.Create(ctx, rec))
	require.NotEqual(t, uuid.Nil, rec.ID)

	rec.FileNames[0] = "mutated.pdf"

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StringList{"a.pdf"}, got.FileNames)
	assert.NoError(t, repo.Ping(ctx))
}

func TestClaimRepo_GetByID_NotFound(t *testing.T) {
	_, err := memory.NewClaimRepo().GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrClaimNotFound)
}

func TestClaimRepo_ListNewestFirstWithPaging(t *testing.T) {
	repo := memory.NewClaimRepo()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &domain.ClaimRecord{
			Reason:    string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	page, total, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "d", page[0].Reason)
	assert.Equal(t, "c", page[1].Reason)

	empty, total, err := repo.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Empty(t, empty)
}
