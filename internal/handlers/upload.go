package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"socialfeed/internal/media"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

type UploadTooLargeError struct {
	Limit int64
}

func (e *UploadTooLargeError) Error() string {
	return fmt.Sprintf("El archivo supera el tamaño máximo de %d MB", e.Limit>>20)
}

// readUpload returns the file sent in field, or nil when none was sent.
func readUpload(c *gin.Context, field string, limit int64) (*media.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("read form file %s: %w", field, err)
	}
	if limit > 0 && fh.Size > limit {
		return nil, &UploadTooLargeError{Limit: limit}
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open form file %s: %w", field, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read form file %s: %w", field, err)
	}

	// trust the client's type and name unless they are missing
	detected := mimetype.Detect(data)
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = detected.String()
	}
	name := fh.Filename
	if filepath.Ext(name) == "" {
		name += detected.Extension()
	}
	return &media.Upload{Data: data, Filename: name, ContentType: contentType}, nil
}
