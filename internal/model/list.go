package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type List struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title   string    `gorm:"not null"`
	BoardID uuid.UUID `gorm:"type:uuid;not null;index"`
	// CardIDs is the authoritative order and membership of the list's cards.
	CardIDs   IDList `gorm:"column:card_ids;not null"`
	Position  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *List) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.CardIDs == nil {
		l.CardIDs = IDList{}
	}
	return nil
}
