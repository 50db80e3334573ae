package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"siscav/internal/model"
)

// AccessLogFilter narrows access-log listings. Zero-valued fields are
// ignored; set fields combine with AND.
type AccessLogFilter struct {
	// Plate matches as a case-insensitive substring of the detected
	// (unnormalized) plate string.
	Plate  string
	Status model.AccessStatus
	From   *time.Time
	To     *time.Time
}

// AccessLogRepository defines access-log persistence operations. Logs are
// append-only: there is deliberately no update or delete.
type AccessLogRepository interface {
	Create(ctx context.Context, log *model.AccessLog) error
	ListPage(ctx context.Context, skip, limit int, filter AccessLogFilter) ([]model.AccessLog, int64, error)
}

type accessLogRepository struct {
	db *gorm.DB
}

// NewAccessLogRepository builds a GORM-backed repository.
func NewAccessLogRepository(db *gorm.DB) AccessLogRepository {
	return &accessLogRepository{db: db}
}

// Create appends one row in its own transaction: the row is either fully
// written or not written at all.
func (r *accessLogRepository) Create(ctx context.Context, log *model.AccessLog) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(log).Error
	})
	if err != nil {
		return fmt.Errorf("create access log: %w", err)
	}
	return nil
}

func applyFilter(q *gorm.DB, filter AccessLogFilter) *gorm.DB {
	if p := strings.TrimSpace(filter.Plate); p != "" {
		q = q.Where("LOWER(plate_string_detected) LIKE ?", "%"+strings.ToLower(p)+"%")
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		q = q.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("timestamp <= ?", *filter.To)
	}
	return q
}

// ListPage returns one page ordered by timestamp descending (most recent
// first) plus the total matching the filter at query time.
func (r *accessLogRepository) ListPage(ctx context.Context, skip, limit int, filter AccessLogFilter) ([]model.AccessLog, int64, error) {
	var total int64
	countQuery := applyFilter(r.db.WithContext(ctx).Model(&model.AccessLog{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count access logs: %w", err)
	}

	var logs []model.AccessLog
	listQuery := applyFilter(r.db.WithContext(ctx).Model(&model.AccessLog{}), filter)
	err := listQuery.
		Order("timestamp DESC").
		Offset(skip).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list access logs: %w", err)
	}
	return logs, total, nil
}
