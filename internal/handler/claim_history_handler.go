package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medclaim/internal/domain"
	"medclaim/internal/export"
	"medclaim/internal/service"
)

// ClaimHistoryHandler handles processed claim lookup and export endpoints.
type ClaimHistoryHandler struct {
	historyService service.ClaimHistoryService
	now            func() time.Time
}

// NewClaimHistoryHandler creates a new ClaimHistoryHandler.
func NewClaimHistoryHandler(historyService service.ClaimHistoryService) *ClaimHistoryHandler {
	return &ClaimHistoryHandler{historyService: historyService, now: time.Now}
}

// List handles GET /api/v1/claims
// @Summary List processed claims
// @Description List processed claims, newest first
// @Tags claims
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ClaimRecord,meta=PagMeta} "List of claims"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /api/v1/claims [get]
func (h *ClaimHistoryHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, limit = service.NormalizePage(offset, limit)

	recs, total, err := h.historyService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, recs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/claims/:id
// @Summary Get a processed claim
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} Response{data=domain.ClaimRecord} "Claim"
// @Failure 400 {object} ErrorResponseBody "Invalid claim ID"
// @Failure 404 {object} ErrorResponseBody "Claim not found"
// @Router /api/v1/claims/{id} [get]
func (h *ClaimHistoryHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid claim ID")
		return
	}

	rec, err := h.historyService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rec)
}

// Export handles GET /api/v1/claims/export
// @Summary Export processed claims
// @Description Download every processed claim as CSV or XLSX
// @Tags claims
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file "Claim report"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Router /api/v1/claims/export [get]
func (h *ClaimHistoryHandler) Export(c *gin.Context) {
	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportFormatCSV)))
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		HandleError(c, domain.ErrUnsupportedExportFormat)
		return
	}

	var buf bytes.Buffer
	if err := h.historyService.Export(c.Request.Context(), format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.BuildFilename(format, h.now())+`"`)
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}
