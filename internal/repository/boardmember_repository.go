package repository

import (
	"context"
	"errors"

	"boardsync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BoardMemberRepository struct {
	db *gorm.DB
}

func NewBoardMemberRepository(db *gorm.DB) *BoardMemberRepository {
	return &BoardMemberRepository{db: db}
}

// AddMember adds the user to the board. Adding an existing member is a no-op;
// an existing owner row is never downgraded.
func (r *BoardMemberRepository) AddMember(ctx context.Context, boardID, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.BoardMember
		err := tx.Where("board_id = ? AND user_id = ?", boardID, userID).First(&existing).Error
		if err == nil {
			if role == model.RoleOwner && existing.Role != model.RoleOwner {
				existing.Role = role
				return tx.Save(&existing).Error
			}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&model.BoardMember{BoardID: boardID, UserID: userID, Role: role}).Error
	})
}

func (r *BoardMemberRepository) RemoveMember(ctx context.Context, boardID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Delete(&model.BoardMember{}).Error
}

func (r *BoardMemberRepository) GetMembers(ctx context.Context, boardID uuid.UUID) ([]model.BoardMember, error) {
	var members []model.BoardMember
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at").
		Find(&members).Error
	return members, err
}

// IsMember reports whether the user owns or is a member of the board.
func (r *BoardMemberRepository) IsMember(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", boardID, userID).
		First(&board).Error
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(&model.BoardMember{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// BoardIDsForUser lists every board the user owns or belongs to.
func (r *BoardMemberRepository) BoardIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Board{}).
		Where("owner_id = ? OR id IN (?)", userID,
			r.db.Model(&model.BoardMember{}).Select("board_id").Where("user_id = ?", userID)).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *BoardMemberRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&model.BoardMember{}).Error
}
