package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Code       string     `gorm:"uniqueIndex;size:50;not null" json:"code"`
	FirstName  string     `gorm:"size:120;not null" json:"firstName"`
	LastName   string     `gorm:"size:120;not null" json:"lastName"`
	Email      string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PositionID *uuid.UUID `gorm:"type:char(36);index" json:"positionId,omitempty"`
	UnitID     *uuid.UUID `gorm:"type:char(36);index" json:"unitId,omitempty"`
	Position   *Position  `gorm:"foreignKey:PositionID" json:"position,omitempty"`
	Unit       *Unit      `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	HiredAt    time.Time  `json:"hiredAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
