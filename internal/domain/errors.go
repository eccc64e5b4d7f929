package domain

import "errors"

var (
	ErrNoFiles                 = errors.New("no files uploaded")
	ErrClaimNotFound           = errors.New("claim not found")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrStorageFailed           = errors.New("document archive failed")
	ErrUploadTooLarge          = errors.New("upload exceeds maximum allowed size")
)
