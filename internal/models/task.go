package models

import (
	"strings"
	"time"
)

// TaskStatus represents the status of a task on the board
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "inprogress"
	StatusCompleted  TaskStatus = "completed"
)

// NormalizeStatus lowercases a raw status value and reports whether it is
// one of the three allowed board columns.
func NormalizeStatus(raw string) (TaskStatus, bool) {
	s := TaskStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return s, true
	}
	return "", false
}

// Task represents a task in the system.
// Archived is an orthogonal terminal flag layered on top of Status: it is only
// settable while Status is completed, and an archived task is frozen.
type Task struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Description  string     `json:"desc" gorm:"not null"`
	Status       TaskStatus `json:"status" gorm:"not null;default:'pending';index"`
	OwnerID      string     `json:"owner" gorm:"column:owner_id;index"`
	AssignedToID string     `json:"assignedTo" gorm:"column:assigned_to_id;index"`
	Archived     bool       `json:"archived" gorm:"not null;default:false;index"`
	ArchivedAt   *time.Time `json:"archivedAt,omitempty" gorm:"column:archived_at"`
	CreatedAt    time.Time  `json:"createdAt" gorm:"column:created_at;index"`
	UpdatedAt    time.Time  `json:"-" gorm:"column:updated_at"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}
