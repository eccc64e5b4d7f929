package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"medclaim/internal/domain"
)

// FilesField is the multipart field carrying claim documents.
const FilesField = "files"

// multipartMemory is the part of a multipart form kept in memory; the rest spills to disk.
const multipartMemory = 32 << 20

// readClaimDocuments reads every part of the files field in upload order.
func readClaimDocuments(c *gin.Context, maxBytes int64) ([]domain.ClaimDocument, error) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.ErrUploadTooLarge
		}
		return nil, domain.ErrNoFiles
	}
	defer func() { _ = c.Request.MultipartForm.RemoveAll() }()

	headers := c.Request.MultipartForm.File[FilesField]
	if len(headers) == 0 {
		return nil, domain.ErrNoFiles
	}

	docs := make([]domain.ClaimDocument, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", fh.Filename, err)
		}
		docs = append(docs, domain.ClaimDocument{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return docs, nil
}
