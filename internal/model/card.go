package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Card has no stored position: its order is its index in List.CardIDs.
type Card struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	ListID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	BoardID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Assignees   IDList     `gorm:"not null"`
	Labels      StringList `gorm:"not null"`
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Card) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Assignees == nil {
		c.Assignees = IDList{}
	}
	if c.Labels == nil {
		c.Labels = StringList{}
	}
	return nil
}

type CardComment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CardID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	Text      string    `gorm:"not null"`
	Timestamp time.Time `gorm:"not null"`
}

func (c *CardComment) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	return nil
}
