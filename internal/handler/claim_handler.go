package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medclaim/internal/service"
)

// ClaimHandler handles the claim processing endpoint.
type ClaimHandler struct {
	claimService   service.ClaimService
	maxUploadBytes int64
}

// NewClaimHandler creates a new ClaimHandler. maxUploadBytes of zero disables the limit.
func NewClaimHandler(claimService service.ClaimService, maxUploadBytes int64) *ClaimHandler {
	return &ClaimHandler{claimService: claimService, maxUploadBytes: maxUploadBytes}
}

// Process handles POST /process-claim
// @Summary Process a claim
// @Description Classify and extract every uploaded document, validate them together and decide the claim.
// @Description The success body is the bare processing result, not the standard envelope.
// @Tags claims
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Claim documents (repeat the field for each file)"
// @Success 200 {object} domain.ProcessingResult "Claim decision"
// @Failure 400 {object} ErrorResponseBody "No files uploaded"
// @Failure 413 {object} ErrorResponseBody "Upload too large"
// @Failure 500 {object} ErrorResponseBody "Processing failed"
// @Router /process-claim [post]
func (h *ClaimHandler) Process(c *gin.Context) {
	docs, err := readClaimDocuments(c, h.maxUploadBytes)
	if err != nil {
		HandleError(c, err)
		return
	}

	result, err := h.claimService.ProcessClaim(c.Request.Context(), docs)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
