package models

import "time"

// Role represents the authorization level of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ValidRole reports whether a raw role value is one of the known roles.
func ValidRole(raw string) bool {
	return Role(raw) == RoleAdmin || Role(raw) == RoleUser
}

// User represents a user in the system
type User struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"unique;not null"`
	DisplayName string    `json:"displayName"`
	Role        Role      `json:"role" gorm:"not null;default:'user'"`
	Password    string    `json:"-" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
}

// Label returns the name used to present this user, preferring the
// display name and falling back to the username.
func (u User) Label() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// TableName specifies the table name for User Model
func (User) TableName() string {
	return "users"
}
