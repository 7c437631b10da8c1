package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Pause is a break interval inside a shift. EmployeeID is denormalized from
// the owning shift so the active-pause lookup does not need a join. At most
// one pause per employee has a nil EndAt.
type Pause struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	ShiftID    uuid.UUID  `gorm:"type:char(36);index;not null" json:"shiftId"`
	EmployeeID uuid.UUID  `gorm:"type:char(36);index;not null" json:"employeeId"`
	StartAt    time.Time  `gorm:"not null" json:"startAt"`
	EndAt      *time.Time `json:"endAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (p *Pause) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
