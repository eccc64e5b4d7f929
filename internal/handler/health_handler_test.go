package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"medclaim/internal/handler"
	"medclaim/mocks"
)

func TestHealthHandler(t *testing.T) {
	repo := new(mocks.MockClaimRepo)
	repo.On("Ping", mock.Anything).Return(nil).Once()
	repo.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()

	h := handler.NewHealthHandler(repo)
	r := gin.New()
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)

	assert.Equal(t, http.StatusOK, get(r, "/healthz").Code)
	assert.Equal(t, http.StatusOK, get(r, "/readyz").Code)

	w := get(r, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}
