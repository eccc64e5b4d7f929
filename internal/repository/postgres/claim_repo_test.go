package postgres_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medclaim/internal/domain"
	"medclaim/internal/port"
	"medclaim/internal/repository/postgres"
)

var claimCols = []string{"id", "status", "reason", "document_count", "file_names", "result", "created_at"}

func newMockRepo(t *testing.T) (port.ClaimRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return postgres.NewClaimRepo(sqlx.NewDb(db, "sqlmock")), mock
}

func TestClaimRepo_Create(t *testing.T) {
	repo, mock := newMockRepo(t)

	rec := &domain.ClaimRecord{
		Status:        domain.ClaimStatusApproved,
		Reason:        "All documents consistent",
		DocumentCount: 1,
		FileNames:     domain.StringList{"bill.pdf"},
		Result:        json.RawMessage(`{"documents":[]}`),
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO claims")).
		WithArgs(sqlmock.AnyArg(), domain.ClaimStatusApproved, "All documents consistent", 1,
			[]byte(`["bill.pdf"]`), []byte(`{"documents":[]}`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), rec))
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepo_GetByID(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()
	created := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, status, reason, document_count, file_names, result, created_at FROM claims WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(claimCols).
			AddRow(id.String(), "manual_review", "Discrepancies detected", 2, []byte(`["a.pdf","b.pdf"]`), []byte(`{"documents":[]}`), created))

	rec, err := repo.GetByID(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, domain.ClaimStatusManualReview, rec.Status)
	assert.Equal(t, domain.StringList{"a.pdf", "b.pdf"}, rec.FileNames)
	assert.JSONEq(t, `{"documents":[]}`, string(rec.Result))
	assert.Equal(t, created, rec.CreatedAt)
}

func TestClaimRepo_GetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM claims WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(claimCols))

	_, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrClaimNotFound)
}

func TestClaimRepo_List(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM claims")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT $1 OFFSET $2")).
		WithArgs(2, 1).
		WillReturnRows(sqlmock.NewRows(claimCols).
			AddRow(uuid.New().String(), "approved", "ok", 3, []byte(`[]`), []byte(`{}`), time.Now()).
			AddRow(uuid.New().String(), "rejected", "missing", 1, []byte(`[]`), []byte(`{}`), time.Now()))

	recs, total, err := repo.List(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, recs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimRepo_Ping(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectPing()

	assert.NoError(t, repo.Ping(context.Background()))
}
