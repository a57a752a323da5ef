package db

import (
	"github.com/taskapi/backend/internal/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Task{})
}
