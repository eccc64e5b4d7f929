package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"medclaim/internal/domain"
	"medclaim/internal/handler"
	"medclaim/mocks"
)

func historyRouter(svc *mocks.MockClaimHistoryService) *gin.Engine {
	h := handler.NewClaimHistoryHandler(svc)
	r := gin.New()
	r.GET("/api/v1/claims", h.List)
	r.GET("/api/v1/claims/export", h.Export)
	r.GET("/api/v1/claims/:id", h.GetByID)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, http.NoBody)
	r.ServeHTTP(w, req)
	return w
}

func TestClaimHistoryHandler_List(t *testing.T) {
	svc := new(mocks.MockClaimHistoryService)
	recs := []domain.ClaimRecord{{ID: uuid.New(), Status: domain.ClaimStatusApproved}}
	svc.On("List", mock.Anything, 10, 5).Return(recs, 11, nil)

	w := get(historyRouter(svc), "/api/v1/claims?offset=10&limit=5")

	require.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, handler.PagMeta{Total: 11, Offset: 10, Limit: 5}, *resp.Meta)
	svc.AssertExpectations(t)
}

func TestClaimHistoryHandler_List_EchoesClampedPage(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		offset int
		limit  int
	}{
		{"limit above max", "?limit=500", 0, 100},
		{"zero limit", "?limit=0", 0, 20},
		{"negative offset", "?offset=-3&limit=abc", 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockClaimHistoryService)
			svc.On("List", mock.Anything, tt.offset, tt.limit).Return([]domain.ClaimRecord{}, 0, nil)

			w := get(historyRouter(svc), "/api/v1/claims"+tt.query)

			require.Equal(t, http.StatusOK, w.Code)
			var resp handler.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotNil(t, resp.Meta)
			assert.Equal(t, handler.PagMeta{Total: 0, Offset: tt.offset, Limit: tt.limit}, *resp.Meta)
			svc.AssertExpectations(t)
		})
	}
}

func TestClaimHistoryHandler_GetByID(t *testing.T) {
	svc := new(mocks.MockClaimHistoryService)
	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(&domain.ClaimRecord{ID: id, Status: domain.ClaimStatusRejected}, nil)

	w := get(historyRouter(svc), "/api/v1/claims/"+id.String())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
}

func TestClaimHistoryHandler_GetByID_Errors(t *testing.T) {
	svc := new(mocks.MockClaimHistoryService)
	missing := uuid.New()
	svc.On("Get", mock.Anything, missing).Return(nil, domain.ErrClaimNotFound)
	r := historyRouter(svc)

	w := get(r, "/api/v1/claims/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/api/v1/claims/"+missing.String())
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CLAIM_NOT_FOUND")
}

func TestClaimHistoryHandler_Export(t *testing.T) {
	svc := new(mocks.MockClaimHistoryService)
	svc.On("Export", mock.Anything, domain.ExportFormatCSV, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(2).(io.Writer), "Claim ID,Status\n")
		}).
		Return(nil)

	w := get(historyRouter(svc), "/api/v1/claims/export")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Regexp(t, `attachment; filename="claims_\d{4}-\d{2}-\d{2}\.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Claim ID,Status\n", w.Body.String())
}

func TestClaimHistoryHandler_Export_UnsupportedFormat(t *testing.T) {
	svc := new(mocks.MockClaimHistoryService)

	w := get(historyRouter(svc), "/api/v1/claims/export?format=pdf")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_EXPORT_FORMAT")
	svc.AssertNotCalled(t, "Export", mock.Anything, mock.Anything, mock.Anything)
}
