package repository

import (
	"context"
	"errors"

	"boardsync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) Create(ctx context.Context, list *model.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *ListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.List, error) {
	var list model.List
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return &list, nil
}

func (r *ListRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.List, error) {
	var lists []model.List
	if len(ids) == 0 {
		return lists, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&lists).Error
	return lists, err
}

// GetByBoardID returns the board's lists in display order. Ties on position
// only exist transiently; creation time and id make the order total anyway.
func (r *ListRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.List, error) {
	var lists []model.List
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position").Order("created_at").Order("id").
		Find(&lists).Error
	return lists, err
}

// MaxPositionByBoardID returns the highest list position on the board, or -1
// when the board has no lists.
func (r *ListRepository) MaxPositionByBoardID(ctx context.Context, boardID uuid.UUID) (int, error) {
	var top int
	err := r.db.WithContext(ctx).Model(&model.List{}).
		Where("board_id = ?", boardID).
		Select("COALESCE(MAX(position), -1)").
		Scan(&top).Error
	return top, err
}

func (r *ListRepository) CountByBoardIDs(ctx context.Context, boardIDs []uuid.UUID) (int64, error) {
	var count int64
	if len(boardIDs) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).Model(&model.List{}).Where("board_id IN ?", boardIDs).Count(&count).Error
	return count, err
}

func (r *ListRepository) UpdateTitle(ctx context.Context, id uuid.UUID, title string) error {
	result := r.db.WithContext(ctx).Model(&model.List{}).Where("id = ?", id).Update("title", title)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListNotFound
	}
	return nil
}

// SetCardIDs overwrites the list's card sequence.
func (r *ListRepository) SetCardIDs(ctx context.Context, id uuid.UUID, cardIDs model.IDList) error {
	if cardIDs == nil {
		cardIDs = model.IDList{}
	}
	result := r.db.WithContext(ctx).Model(&model.List{}).Where("id = ?", id).Update("card_ids", cardIDs)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListNotFound
	}
	return nil
}

// SetPositions assigns position = index for every id, in order.
func (r *ListRepository) SetPositions(ctx context.Context, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			result := tx.Model(&model.List{}).Where("id = ?", id).Update("position", i)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrListNotFound
			}
		}
		return nil
	})
}

func (r *ListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.List{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrListNotFound
	}
	return nil
}

func (r *ListRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&model.List{}).Error
}
