package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LineStraight   = "straight"
	LineCurved     = "curved"
	LineOrthogonal = "orthogonal"

	ArrowArrow = "arrow"
	ArrowNone  = "none"

	DefaultConnectorColor = "#9333ea"
)

// Connector links two canvas elements. FromElement and ToElement are opaque
// canvas ids, not card or list ids.
type Connector struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FromElement string    `gorm:"not null"`
	ToElement   string    `gorm:"not null"`
	LineStyle   string    `gorm:"not null"`
	ArrowStyle  string    `gorm:"not null"`
	Color       string    `gorm:"not null"`
	Label       string
	FromX       float64
	FromY       float64
	ToX         float64
	ToY         float64
	CreatedBy   uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (c *Connector) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.LineStyle == "" {
		c.LineStyle = LineStraight
	}
	if c.ArrowStyle == "" {
		c.ArrowStyle = ArrowArrow
	}
	if c.Color == "" {
		c.Color = DefaultConnectorColor
	}
	return nil
}

// All returns every persisted model, in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Board{},
		&BoardMember{},
		&BoardActivity{},
		&List{},
		&Card{},
		&CardComment{},
		&Connector{},
	}
}
