package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultBoardColor = "#6366f1"

type Board struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	// ListIDs mirrors list membership in creation order. Display order comes
	// from List.Position, not from this slice.
	ListIDs   IDList `gorm:"column:list_ids;not null"`
	Color     string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Board) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Color == "" {
		b.Color = DefaultBoardColor
	}
	return nil
}

// BoardActivity is one entry of a board's append-only activity log.
type BoardActivity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Action      string    `gorm:"not null"`
	UserID      uuid.UUID `gorm:"type:uuid;not null"`
	Description string
	Timestamp   time.Time `gorm:"not null;index"`
}

func (a *BoardActivity) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}
