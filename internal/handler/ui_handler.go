package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medclaim/internal/domain"
	"medclaim/internal/middleware"
	"medclaim/internal/ui"
)

// UISubmitPath is where the upload form posts.
const UISubmitPath = "/ui/submit"

// UIHandler serves the upload page. Claims are submitted through the processing endpoint
// over HTTP, never in-process.
type UIHandler struct {
	submitter      ui.Submitter
	title          string
	maxUploadBytes int64
}

// NewUIHandler creates a new UIHandler.
func NewUIHandler(submitter ui.Submitter, title string, maxUploadBytes int64) *UIHandler {
	return &UIHandler{submitter: submitter, title: title, maxUploadBytes: maxUploadBytes}
}

// Index handles GET /
func (h *UIHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, ui.PageTemplate, ui.NewPage(h.title, UISubmitPath, ui.State{}))
}

// Submit handles POST /ui/submit
func (h *UIHandler) Submit(c *gin.Context) {
	ws := ui.NewWorkspace(h.submitter)

	docs, err := readClaimDocuments(c, h.maxUploadBytes)
	switch {
	case errors.Is(err, domain.ErrNoFiles):
		// An empty selection is not submitted.
	case err != nil:
		zap.L().Warn("handler.UIHandler.Submit: reading upload failed",
			zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		c.HTML(http.StatusOK, ui.PageTemplate, ui.Page{Title: h.title, SubmitPath: UISubmitPath, Error: ui.GenericErrorMessage})
		return
	default:
		ws.Select(docs)
		if err := ws.Submit(c.Request.Context()); err != nil {
			zap.L().Warn("handler.UIHandler.Submit: claim submission failed",
				zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		}
	}

	c.HTML(http.StatusOK, ui.PageTemplate, ui.NewPage(h.title, UISubmitPath, ws.State()))
}
