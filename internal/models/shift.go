package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shift is one workday's attendance record. EndAt stays nil until the
// employee checks out or the closure sweep closes the shift; Closed is
// terminal and never reset.
type Shift struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID uuid.UUID  `gorm:"type:char(36);index;not null" json:"employeeId"`
	WorkDate   time.Time  `gorm:"type:date;index;not null" json:"workDate"`
	StartAt    time.Time  `gorm:"not null" json:"startAt"`
	EndAt      *time.Time `json:"endAt,omitempty"`
	Closed     bool       `gorm:"index;not null;default:false" json:"closed"`
	AutoClosed bool       `gorm:"not null;default:false" json:"autoClosed"`
	Comment    string     `gorm:"size:255" json:"comment,omitempty"`
	Pauses     []Pause    `gorm:"foreignKey:ShiftID;constraint:OnDelete:CASCADE" json:"pauses,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
