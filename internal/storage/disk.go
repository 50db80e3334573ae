package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	apperrors "siscav/internal/errors"
)

// DiskStore keeps images as flat files under a single directory. Keys are
// generated filenames, so no two writers ever target the same file.
type DiskStore struct {
	dir string
}

var _ ImageStore = (*DiskStore)(nil)

// NewDiskStore creates the upload directory if needed and returns a store
// rooted there.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the image to <dir>/<key>.
func (s *DiskStore) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write image file: %w", err)
	}
	return nil
}

// Open returns the stored file for key.
func (s *DiskStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("open image file: %w", err)
	}
	return f, nil
}
