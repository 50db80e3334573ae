package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "siscav/internal/errors"
	"siscav/internal/model"
)

// PlateRepository defines whitelist persistence operations.
//
// Uniqueness of the normalized plate is enforced by the unique index, never by
// a check-then-insert in application code: concurrent creates of the same
// plate resolve to exactly one success and one ErrDuplicatePlate.
type PlateRepository interface {
	Create(ctx context.Context, plate *model.AuthorizedPlate) error
	Save(ctx context.Context, plate *model.AuthorizedPlate) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AuthorizedPlate, error)
	FindByNormalizedPlate(ctx context.Context, normalized string) (*model.AuthorizedPlate, error)
	ListPage(ctx context.Context, skip, limit int) ([]model.AuthorizedPlate, int64, error)
	// WithTransaction executes fn within a single transaction; every
	// repository call made through the passed repository shares that
	// transaction and commits or rolls back as one unit.
	WithTransaction(ctx context.Context, fn func(repo PlateRepository) error) error
}

type plateRepository struct {
	db *gorm.DB
}

// NewPlateRepository builds a GORM-backed repository.
func NewPlateRepository(db *gorm.DB) PlateRepository {
	return &plateRepository{db: db}
}

func (r *plateRepository) Create(ctx context.Context, plate *model.AuthorizedPlate) error {
	if err := r.db.WithContext(ctx).Create(plate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicatePlate
		}
		return fmt.Errorf("create plate: %w", err)
	}
	return nil
}

// Save persists all fields of an existing entry. A normalized-plate collision
// with a different row violates the unique index and surfaces as
// ErrDuplicatePlate; saving an entry with its own current value does not.
func (r *plateRepository) Save(ctx context.Context, plate *model.AuthorizedPlate) error {
	if err := r.db.WithContext(ctx).Save(plate).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrDuplicatePlate
		}
		return fmt.Errorf("save plate: %w", err)
	}
	return nil
}

func (r *plateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AuthorizedPlate{})
	if res.Error != nil {
		return fmt.Errorf("delete plate: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrPlateNotFound
	}
	return nil
}

func (r *plateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AuthorizedPlate, error) {
	var plate model.AuthorizedPlate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&plate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlateNotFound
		}
		return nil, fmt.Errorf("find plate by id: %w", err)
	}
	return &plate, nil
}

// FindByNormalizedPlate is the hot path of every access attempt; the lookup
// hits the unique index on normalized_plate.
func (r *plateRepository) FindByNormalizedPlate(ctx context.Context, normalized string) (*model.AuthorizedPlate, error) {
	var plate model.AuthorizedPlate
	if err := r.db.WithContext(ctx).Where("normalized_plate = ?", normalized).First(&plate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPlateNotFound
		}
		return nil, fmt.Errorf("find plate by normalized plate: %w", err)
	}
	return &plate, nil
}

// ListPage returns one page ordered by creation time descending plus the
// unfiltered total at query time.
func (r *plateRepository) ListPage(ctx context.Context, skip, limit int) ([]model.AuthorizedPlate, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.AuthorizedPlate{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count plates: %w", err)
	}

	var plates []model.AuthorizedPlate
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&plates).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list plates: %w", err)
	}
	return plates, total, nil
}

func (r *plateRepository) WithTransaction(ctx context.Context, fn func(repo PlateRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&plateRepository{db: tx})
	})
}
