package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"siscav/internal/cache"
	apperrors "siscav/internal/errors"
	"siscav/internal/logger"
	"siscav/internal/model"
	"siscav/internal/plate"
	"siscav/internal/repository"
	"siscav/internal/storage"
)

// allowedImageTypes maps accepted file extensions to the content type each
// must declare. Extension and declared content type have to agree.
var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// contentTypeByExtension resolves the serving content type for a stored key.
func contentTypeByExtension(key string) string {
	if ct, ok := allowedImageTypes[strings.ToLower(filepath.Ext(key))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ImageUpload carries one uploaded capture image: declared metadata plus the
// byte stream.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// AccessService is the access decision engine: it classifies each submitted
// access attempt against the whitelist and records exactly one log row for it.
type AccessService interface {
	RecordAttempt(ctx context.Context, rawPlate string, upload ImageUpload) (*model.AccessLog, error)
	List(ctx context.Context, skip, limit int, filter repository.AccessLogFilter) ([]model.AccessLog, int64, error)
	// OpenImage returns the stored image bytes and their content type.
	OpenImage(ctx context.Context, filename string) (io.ReadCloser, string, error)
}

type accessService struct {
	plateRepo repository.PlateRepository
	logRepo   repository.AccessLogRepository
	images    storage.ImageStore
	cache     *cache.Client
	maxBytes  int64
	log       *logger.Logger
}

// NewAccessService creates a new access decision engine.
func NewAccessService(
	plateRepo repository.PlateRepository,
	logRepo repository.AccessLogRepository,
	images storage.ImageStore,
	cacheClient *cache.Client,
	maxUploadBytes int64,
	log *logger.Logger,
) AccessService {
	return &accessService{
		plateRepo: plateRepo,
		logRepo:   logRepo,
		images:    images,
		cache:     cacheClient,
		maxBytes:  maxUploadBytes,
		log:       log,
	}
}

// RecordAttempt runs the decision path for one access attempt:
//
//  1. reject empty plate input
//  2. reject unsupported or inconsistent image metadata
//  3. reject oversized payloads
//  4. normalize the plate (no format validation: an OCR misread must still
//     produce a Denied log, not an error)
//  5. look the normalized plate up in the whitelist
//  6. classify Authorized/Denied
//  7. persist the image under a fresh generated key
//  8. append the log row
//
// Cheap validations run before any storage work. If the log insert fails
// after the image was written, the orphaned image is left in place and the
// error is surfaced so the device retries the whole attempt.
func (s *accessService) RecordAttempt(ctx context.Context, rawPlate string, upload ImageUpload) (*model.AccessLog, error) {
	if strings.TrimSpace(rawPlate) == "" {
		return nil, apperrors.ErrEmptyPlate
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	expectedType, ok := allowedImageTypes[ext]
	if !ok || mediaType(upload.ContentType) != expectedType {
		return nil, apperrors.ErrUnsupportedMediaType
	}

	if upload.Size > s.maxBytes {
		return nil, apperrors.ErrPayloadTooLarge
	}

	normalized, err := plate.Normalize(rawPlate)
	if err != nil {
		return nil, err
	}

	matchedID, err := s.lookupWhitelisted(ctx, normalized)
	if err != nil {
		return nil, err
	}

	status := model.AccessStatusDenied
	if matchedID != nil {
		status = model.AccessStatusAuthorized
	}

	key := storage.NewKey(ext)
	if err := s.images.Save(ctx, key, upload.Content, upload.Size, expectedType); err != nil {
		return nil, fmt.Errorf("persist image: %w", err)
	}

	entry := &model.AccessLog{
		PlateStringDetected: rawPlate,
		Status:              status,
		ImageStorageKey:     key,
		AuthorizedPlateID:   matchedID,
	}
	if err := s.logRepo.Create(ctx, entry); err != nil {
		// The image already landed; it stays orphaned rather than risking a
		// delete of a key another attempt could be reading.
		return nil, fmt.Errorf("persist access log: %w", err)
	}

	s.log.Info("access attempt recorded",
		"plate", rawPlate,
		"normalized", normalized,
		"status", status,
		"log_id", entry.ID,
	)
	return entry, nil
}

// lookupWhitelisted resolves the whitelist entry id for a normalized plate,
// consulting the redis lookup cache first. Only positive matches are cached;
// every whitelist mutation invalidates its key.
func (s *accessService) lookupWhitelisted(ctx context.Context, normalized string) (*uuid.UUID, error) {
	if cached, _ := s.cache.Get(ctx, lookupCacheKey(normalized)); cached != nil {
		if id, err := uuid.Parse(string(cached)); err == nil {
			return &id, nil
		}
	}

	entry, err := s.plateRepo.FindByNormalizedPlate(ctx, normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrPlateNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("whitelist lookup: %w", err)
	}

	_ = s.cache.Set(ctx, lookupCacheKey(normalized), []byte(entry.ID.String()), whitelistCacheTTL)
	return &entry.ID, nil
}

func (s *accessService) List(ctx context.Context, skip, limit int, filter repository.AccessLogFilter) ([]model.AccessLog, int64, error) {
	return s.logRepo.ListPage(ctx, skip, limit, filter)
}

// OpenImage serves stored image bytes by filename. Filenames carrying path
// separators or parent-directory sequences are rejected before touching
// storage.
func (s *accessService) OpenImage(ctx context.Context, filename string) (io.ReadCloser, string, error) {
	if filename == "" ||
		strings.Contains(filename, "/") ||
		strings.Contains(filename, "\\") ||
		strings.Contains(filename, "..") {
		return nil, "", apperrors.ErrInvalidFilename
	}

	rc, err := s.images.Open(ctx, filename)
	if err != nil {
		return nil, "", err
	}
	return rc, contentTypeByExtension(filename), nil
}

// mediaType strips any parameters from a Content-Type header value.
func mediaType(ct string) string {
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
