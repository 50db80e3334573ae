package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"siscav/internal/cache"
	apperrors "siscav/internal/errors"
	"siscav/internal/logger"
	"siscav/internal/model"
	"siscav/internal/plate"
	"siscav/internal/repository"
)

const (
	whitelistCacheKeyPrefix = "whitelist:"
	whitelistCacheTTL       = 5 * time.Minute
)

// WhitelistService owns authorized-plate mutations and reads. Writes enforce
// the strict Brazilian plate format; the normalized form is always computed
// server-side from the raw plate.
type WhitelistService interface {
	Create(ctx context.Context, rawPlate, description string) (*model.AuthorizedPlate, error)
	Update(ctx context.Context, id uuid.UUID, rawPlate, description string) (*model.AuthorizedPlate, error)
	// Delete removes an entry and returns the deleted record's snapshot,
	// since the row is gone afterward.
	Delete(ctx context.Context, id uuid.UUID) (*model.AuthorizedPlate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorizedPlate, error)
	List(ctx context.Context, skip, limit int) ([]model.AuthorizedPlate, int64, error)
}

type whitelistService struct {
	plateRepo repository.PlateRepository
	cache     *cache.Client
	log       *logger.Logger
}

// NewWhitelistService creates a new whitelist service.
func NewWhitelistService(plateRepo repository.PlateRepository, cacheClient *cache.Client, log *logger.Logger) WhitelistService {
	return &whitelistService{
		plateRepo: plateRepo,
		cache:     cacheClient,
		log:       log,
	}
}

// Create validates and inserts a new whitelist entry. Duplicate normalized
// plates are rejected by the unique index, not by a pre-check, so concurrent
// creates cannot both succeed.
func (s *whitelistService) Create(ctx context.Context, rawPlate, description string) (*model.AuthorizedPlate, error) {
	if !plate.ValidateFormat(rawPlate) {
		return nil, apperrors.ErrInvalidPlateFormat
	}
	normalized, err := plate.Normalize(rawPlate)
	if err != nil {
		return nil, err
	}

	entry := &model.AuthorizedPlate{
		Plate:           rawPlate,
		NormalizedPlate: normalized,
		Description:     description,
	}
	if err := s.plateRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.invalidateLookup(ctx, normalized)
	s.log.Info("whitelist entry created", "plate", normalized, "id", entry.ID)
	return entry, nil
}

// Update rewrites an existing entry inside one transaction. Changing a plate
// to its own current value is not a conflict; colliding with a different
// entry is.
func (s *whitelistService) Update(ctx context.Context, id uuid.UUID, rawPlate, description string) (*model.AuthorizedPlate, error) {
	if !plate.ValidateFormat(rawPlate) {
		return nil, apperrors.ErrInvalidPlateFormat
	}
	normalized, err := plate.Normalize(rawPlate)
	if err != nil {
		return nil, err
	}

	var updated *model.AuthorizedPlate
	var previousNormalized string
	err = s.plateRepo.WithTransaction(ctx, func(repo repository.PlateRepository) error {
		entry, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		previousNormalized = entry.NormalizedPlate

		entry.Plate = rawPlate
		entry.NormalizedPlate = normalized
		entry.Description = description
		if err := repo.Save(ctx, entry); err != nil {
			return err
		}
		updated = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLookup(ctx, previousNormalized)
	s.invalidateLookup(ctx, normalized)
	s.log.Info("whitelist entry updated", "plate", normalized, "id", id)
	return updated, nil
}

// Delete removes an entry and returns its snapshot.
func (s *whitelistService) Delete(ctx context.Context, id uuid.UUID) (*model.AuthorizedPlate, error) {
	var snapshot *model.AuthorizedPlate
	err := s.plateRepo.WithTransaction(ctx, func(repo repository.PlateRepository) error {
		entry, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		snapshot = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLookup(ctx, snapshot.NormalizedPlate)
	s.log.Info("whitelist entry deleted", "plate", snapshot.NormalizedPlate, "id", id)
	return snapshot, nil
}

func (s *whitelistService) GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorizedPlate, error) {
	return s.plateRepo.FindByID(ctx, id)
}

func (s *whitelistService) List(ctx context.Context, skip, limit int) ([]model.AuthorizedPlate, int64, error) {
	return s.plateRepo.ListPage(ctx, skip, limit)
}

// invalidateLookup drops the cached lookup entry for a normalized plate so
// the access decision engine never classifies against stale whitelist state.
func (s *whitelistService) invalidateLookup(ctx context.Context, normalized string) {
	_ = s.cache.Delete(ctx, lookupCacheKey(normalized))
}

func lookupCacheKey(normalized string) string {
	return whitelistCacheKeyPrefix + normalized
}
