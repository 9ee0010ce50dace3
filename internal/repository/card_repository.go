package repository

import (
	"context"
	"errors"

	"boardsync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) *CardRepository {
	return &CardRepository{db: db}
}

// Create adds a new card to the database
func (r *CardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// GetByID retrieves a card by its ID
func (r *CardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Card, error) {
	var card model.Card
	result := r.db.WithContext(ctx).First(&card, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, result.Error
	}
	return &card, nil
}

// GetByIDs loads cards keyed by id. Ids with no row are absent from the map.
func (r *CardRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Card, error) {
	out := make(map[uuid.UUID]model.Card, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var cards []model.Card
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cards).Error; err != nil {
		return nil, err
	}
	for _, c := range cards {
		out[c.ID] = c
	}
	return out, nil
}

// Update writes the editable card fields
func (r *CardRepository) Update(ctx context.Context, card *model.Card) error {
	result := r.db.WithContext(ctx).Model(card).
		Select("title", "description", "due_date", "labels", "assignees", "updated_at").
		Updates(card)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// SetList updates the card's list back-reference
func (r *CardRepository) SetList(ctx context.Context, id, listID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Card{}).Where("id = ?", id).Update("list_id", listID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// Delete removes a card and its comments
func (r *CardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("card_id = ?", id).Delete(&model.CardComment{}).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&model.Card{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

// DeleteByList removes every card whose back-reference points at the list
func (r *CardRepository) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	sub := r.db.Model(&model.Card{}).Select("id").Where("list_id = ?", listID)
	if err := r.db.WithContext(ctx).Where("card_id IN (?)", sub).Delete(&model.CardComment{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("list_id = ?", listID).Delete(&model.Card{}).Error
}

func (r *CardRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	sub := r.db.Model(&model.Card{}).Select("id").Where("board_id = ?", boardID)
	if err := r.db.WithContext(ctx).Where("card_id IN (?)", sub).Delete(&model.CardComment{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&model.Card{}).Error
}

func (r *CardRepository) CountByBoardIDs(ctx context.Context, boardIDs []uuid.UUID) (int64, error) {
	var count int64
	if len(boardIDs) == 0 {
		return 0, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Card{}).Where("board_id IN ?", boardIDs).Count(&count).Error
	return count, err
}

// AddComment appends a comment to the card
func (r *CardRepository) AddComment(ctx context.Context, comment *model.CardComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// GetComments returns comments for the given cards, oldest first
func (r *CardRepository) GetComments(ctx context.Context, cardIDs []uuid.UUID) ([]model.CardComment, error) {
	var comments []model.CardComment
	if len(cardIDs) == 0 {
		return comments, nil
	}
	err := r.db.WithContext(ctx).
		Where("card_id IN ?", cardIDs).
		Order("timestamp").Order("id").
		Find(&comments).Error
	return comments, err
}
