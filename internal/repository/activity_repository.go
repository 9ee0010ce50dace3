package repository

import (
	"context"

	"boardsync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityRepository stores the append-only board activity log.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, activity *model.BoardActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// Recent returns up to limit entries, newest first.
func (r *ActivityRepository) Recent(ctx context.Context, boardID uuid.UUID, limit int) ([]model.BoardActivity, error) {
	var entries []model.BoardActivity
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("timestamp DESC").Order("id").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *ActivityRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&model.BoardActivity{}).Error
}
