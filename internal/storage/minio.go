package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	apperrors "siscav/internal/errors"
)

// MinioStore keeps images in an object-storage bucket. It is the alternative
// ImageStore backend for deployments where capture devices and the API do not
// share a filesystem.
type MinioStore struct {
	client *minio.Client
	bucket string
}

var _ ImageStore = (*MinioStore)(nil)

// NewMinioStore ensures the bucket exists and returns a store bound to it.
func NewMinioStore(ctx context.Context, client *minio.Client, bucket string) (*MinioStore, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &MinioStore{client: client, bucket: bucket}, nil
}

// Save uploads the image bytes under key.
func (s *MinioStore) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload image object: %w", err)
	}
	return nil
}

// Open returns the stored object for key.
func (s *MinioStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	// GetObject is lazy; stat first so a missing key is reported up front.
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("stat image object: %w", err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get image object: %w", err)
	}
	return obj, nil
}
