package noop

import (
	"context"
	"io"

	"go.uber.org/zap"

	"medclaim/internal/port"
)

// Storage discards documents. Used when no archive bucket is configured.
type Storage struct{}

// NewStorage creates a no-op ObjectStorage.
func NewStorage() port.ObjectStorage {
	return &Storage{}
}

func (s *Storage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	if input.Body != nil {
		_, _ = io.Copy(io.Discard, input.Body)
	}
	zap.L().Debug("noop.Storage.Upload: archive disabled, document not stored", zap.String("key", input.Key))
	return &port.UploadOutput{Location: "noop://" + input.Key}, nil
}
