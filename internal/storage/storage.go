package storage

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// ImageStore persists capture images under opaque storage keys. The access
// decision engine only needs "persist these bytes, get back a reference", so
// backends (flat files, object storage, an async writer) are interchangeable.
type ImageStore interface {
	// Save writes the image bytes under key. size may be -1 when unknown.
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Open returns the stored bytes for key, or ErrImageNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// NewKey returns a fresh collision-resistant storage key carrying the given
// file extension (".jpg", ".png", ...). Keys are always generated, never
// derived from user input, so no uploaded filename can steer where bytes land.
func NewKey(ext string) string {
	return uuid.NewString() + ext
}
