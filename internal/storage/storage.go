// Package storage persists uploaded product images for the fixture API.
package storage

import (
	"context"
	"fmt"
	"io"
)

// Stored describes a saved upload
type Stored struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Storage saves upload streams and hands back a public URL
type Storage interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader) (*Stored, error)
}

// MaxUploadSize bounds product image uploads
const MaxUploadSize = 5 << 20 // 5 MiB

var allowedContentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
}

// ValidateFileSize rejects uploads over the limit
func ValidateFileSize(size int64) error {
	if size > MaxUploadSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", int64(MaxUploadSize))
	}
	return nil
}

// ValidateContentType rejects non-image uploads
func ValidateContentType(contentType string) error {
	for _, allowed := range allowedContentTypes {
		if contentType == allowed {
			return nil
		}
	}
	return fmt.Errorf("content type %s is not allowed", contentType)
}
