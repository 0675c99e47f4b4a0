package database

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kanban-board-api/internal/auth"
	"kanban-board-api/internal/config"
	"kanban-board-api/internal/logging"
	"kanban-board-api/internal/models"
)

var DB *gorm.DB

// InitDB opens the SQLite database, runs migrations and bootstraps the admin
// account. Using glebarez/sqlite which is a pure Go implementation (no CGO
// required).
func InitDB(cfg *config.Config) error {
	var err error

	DB, err = gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	if err := DB.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		return err
	}

	if err := seedAdmin(cfg); err != nil {
		return err
	}

	logging.Logger.WithField("db", cfg.DBPath).Info("database connected and migrated")
	return nil
}

// seedAdmin creates the bootstrap admin user when the users table is empty
// and a password was configured. Without a configured password no account is
// created; registration is still open.
func seedAdmin(cfg *config.Config) error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || cfg.Admin.Password == "" {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:          uuid.NewString(),
		Username:    cfg.Admin.Username,
		DisplayName: "Administrador",
		Role:        models.RoleAdmin,
		Password:    hash,
		CreatedAt:   time.Now(),
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logging.Logger.WithField("username", admin.Username).Info("bootstrap admin created")
	return nil
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
