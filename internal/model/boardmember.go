package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardMember links a user to a board. The owner gets a row too, so a
// membership lookup alone answers "may this user touch the board".
type BoardMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_member"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_board_member;index"`
	Role      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

func (m *BoardMember) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
