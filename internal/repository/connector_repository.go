package repository

import (
	"context"
	"errors"

	"boardsync/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConnectorRepository struct {
	db *gorm.DB
}

func NewConnectorRepository(db *gorm.DB) *ConnectorRepository {
	return &ConnectorRepository{db: db}
}

func (r *ConnectorRepository) Create(ctx context.Context, connector *model.Connector) error {
	return r.db.WithContext(ctx).Create(connector).Error
}

func (r *ConnectorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Connector, error) {
	var connector model.Connector
	if err := r.db.WithContext(ctx).First(&connector, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConnectorNotFound
		}
		return nil, err
	}
	return &connector, nil
}

func (r *ConnectorRepository) GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Connector, error) {
	var connectors []model.Connector
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at").Order("id").
		Find(&connectors).Error
	return connectors, err
}

func (r *ConnectorRepository) Update(ctx context.Context, connector *model.Connector) error {
	result := r.db.WithContext(ctx).Model(connector).
		Select("from_element", "to_element", "line_style", "arrow_style", "color", "label",
			"from_x", "from_y", "to_x", "to_y", "updated_at").
		Updates(connector)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConnectorNotFound
	}
	return nil
}

func (r *ConnectorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Connector{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConnectorNotFound
	}
	return nil
}

func (r *ConnectorRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("board_id = ?", boardID).Delete(&model.Connector{}).Error
}
