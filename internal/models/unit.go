package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Unit struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	ZoneID       *uuid.UUID `gorm:"type:char(36);index" json:"zoneId,omitempty"`
	SupervisorID *uuid.UUID `gorm:"type:char(36);index" json:"supervisorId,omitempty"`
	Zone         *Zone      `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	Supervisor   *Employee  `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
}

func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
