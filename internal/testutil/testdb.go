package testutil

import (
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kanban-board-api/internal/models"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		return nil, err
	}
	return db, nil
}

// SeedUser inserts a user with a throwaway password hash.
func SeedUser(db *gorm.DB, id, username, displayName string, role models.Role) (models.User, error) {
	u := models.User{
		ID:          id,
		Username:    username,
		DisplayName: displayName,
		Role:        role,
		Password:    "x",
		CreatedAt:   time.Now(),
	}
	return u, db.Create(&u).Error
}

// SeedTask inserts a task with the given board state.
func SeedTask(db *gorm.DB, id, ownerID, assignedToID string, status models.TaskStatus, archived bool) (models.Task, error) {
	t := models.Task{
		ID:           id,
		Description:  "task " + id,
		Status:       status,
		OwnerID:      ownerID,
		AssignedToID: assignedToID,
		Archived:     archived,
		CreatedAt:    time.Now(),
	}
	if archived {
		now := time.Now()
		t.ArchivedAt = &now
	}
	return t, db.Create(&t).Error
}
