package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/studentplus/schoolportal/config"
	"github.com/studentplus/schoolportal/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	// The unique composite index on attendances (student, section, date)
	// backs the atomic upsert; keep it in the migrated set.
	if err := DB.AutoMigrate(
		&models.Teacher{},
		&models.ClassSection{},
		&models.Student{},
		&models.Attendance{},
	); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}
