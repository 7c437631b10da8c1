package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Position flagged Night is closed by the night sweep regardless of start hour.
type Position struct {
	ID    uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name  string    `gorm:"size:120;not null" json:"name"`
	Night bool      `gorm:"not null;default:false" json:"night"`
}

func (p *Position) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
