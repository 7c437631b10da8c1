package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/exon-reyes/integra-ws/internal/models"
)

func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.Zone{},
		&models.Position{},
		&models.Unit{},
		&models.Employee{},
		&models.Shift{},
		&models.Pause{},
	); err != nil {
		return nil, err
	}

	return database, nil
}
