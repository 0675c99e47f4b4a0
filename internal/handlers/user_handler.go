package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kanban-board-api/internal/database"
	"kanban-board-api/internal/logging"
	"kanban-board-api/internal/models"
	"kanban-board-api/internal/store"
)

type UserResponse struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName,omitempty"`
	Role        models.Role `json:"role"`
}

// UpdateRoleRequest represents the role-change payload
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UserHandler carries the label resolver so role and profile writes can
// invalidate cached display labels.
type UserHandler struct {
	labels *store.UserLabelResolver
}

func NewUserHandler(labels *store.UserLabelResolver) *UserHandler {
	return &UserHandler{labels: labels}
}

// GetAllUsers returns all users (admin only)
// GET /api/users
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	// Map to safe response payload
	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			ID:          u.ID,
			Username:    u.Username,
			DisplayName: u.DisplayName,
			Role:        u.Role,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}

// UpdateUserRole changes a user's role (admin only)
// PATCH /api/users/:id/role
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	targetID := c.Param("id")
	if targetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role is required"})
		return
	}
	if !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var user models.User
	if err := database.GetDB().Where("id = ?", targetID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return
	}

	user.Role = models.Role(req.Role)
	if err := database.GetDB().Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	// User record changed; drop any cached display label.
	h.labels.Invalidate(user.ID)

	logging.Logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("user role updated")

	c.JSON(http.StatusOK, UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	})
}
