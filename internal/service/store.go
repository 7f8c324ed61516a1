package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"OnShift/internal/model"
	pkgerrors "OnShift/pkg/errors"
	"OnShift/storage/database"
)

// gormStore backs the clock engine with worker_time_records.
// Records are keyed by the worker's public ID.
type gormStore struct{}

func (gormStore) Get(ctx context.Context, workerID int64) (*model.WorkerTimeRecord, error) {
	var rec model.WorkerTimeRecord
	err := database.DB().WithContext(ctx).
		Where("worker_id = ?", workerID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.WorkerNotFound
		}
		return nil, fmt.Errorf("failed to query time record: %w", err)
	}
	return &rec, nil
}

func (gormStore) Update(ctx context.Context, workerID int64, fields map[string]interface{}) error {
	result := database.DB().WithContext(ctx).
		Model(&model.WorkerTimeRecord{}).
		Where("worker_id = ?", workerID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update time record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.WorkerNotFound
	}
	return nil
}

// IncrementTotals applies session-close deltas as SQL expressions so
// concurrent closes never lose an increment.
func (gormStore) IncrementTotals(ctx context.Context, workerID int64, deltaMs int64, deltaHours float64) error {
	result := database.DB().WithContext(ctx).
		Model(&model.WorkerTimeRecord{}).
		Where("worker_id = ?", workerID).
		Updates(map[string]interface{}{
			"accumulated_ms_today": gorm.Expr("accumulated_ms_today + ?", deltaMs),
			"total_hours":          gorm.Expr("total_hours + ?", deltaHours),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to increment totals: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.WorkerNotFound
	}
	return nil
}

func (gormStore) AppendSession(ctx context.Context, session *model.WorkSession) error {
	if err := database.DB().WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to append work session: %w", err)
	}
	return nil
}
