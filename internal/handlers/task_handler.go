package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board-api/internal/database"
	"kanban-board-api/internal/models"
	"kanban-board-api/internal/realtime"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Description string `json:"desc" binding:"required"`
	AssignedTo  string `json:"assignedTo"`
}

// UpdateTaskRequest represents the request payload for updating a task.
// All fields are optional; assignedTo set to the empty string unassigns.
type UpdateTaskRequest struct {
	Description *string `json:"desc"`
	Status      *string `json:"status"`
	AssignedTo  *string `json:"assignedTo"`
}

func isAdminRequest(c *gin.Context) bool {
	return c.GetString("role") == string(models.RoleAdmin)
}

// findVisibleTask loads a task applying role-based visibility: admins see
// every task, everyone else only the ones they own or are assigned to.
func findVisibleTask(c *gin.Context, taskID string) (*models.Task, bool) {
	userID := c.GetString("user_id")

	query := database.GetDB().Where("id = ?", taskID)
	if !isAdminRequest(c) {
		query = query.Where("owner_id = ? OR assigned_to_id = ?", userID, userID)
	}

	var task models.Task
	if err := query.First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return nil, false
	}
	return &task, true
}

// broadcastTaskEvent notifies the owner and assignee of a board change.
func broadcastTaskEvent(eventType string, task *models.Task) {
	evt := map[string]any{
		"type":    eventType,
		"taskId":  task.ID,
		"status":  task.Status,
		"version": 1,
	}
	if bytes, err := json.Marshal(evt); err == nil {
		realtime.GetHub().BroadcastMany([]string{task.OwnerID, task.AssignedToID}, bytes)
	}
}

// assigneeExists checks that a non-empty assignee id references a user.
func assigneeExists(id string) (bool, error) {
	var user models.User
	err := database.GetDB().Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

/*
*
GetTasks handles GET /api/tasks
Returns the board for the authenticated user: every task for admins, owned or
assigned tasks for everyone else. Archived tasks are excluded unless
includeArchived=true. Optional query param: sort (asc|desc on created_at,
default desc).
*/
func GetTasks(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	sortParam := strings.ToLower(c.DefaultQuery("sort", "desc"))
	order := "created_at desc"
	if sortParam == "asc" {
		order = "created_at asc"
	}

	query := database.GetDB().Model(&models.Task{})
	if !isAdminRequest(c) {
		query = query.Where("owner_id = ? OR assigned_to_id = ?", userID, userID)
	}
	if c.Query("includeArchived") != "true" {
		query = query.Where("archived = ?", false)
	}

	var tasks []models.Task
	if err := query.Order(order).Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch tasks",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

/*
*
CreateTask handles POST /api/tasks
Creates a new task owned by the authenticated user. New tasks always start in
the pending column.
*/
func CreateTask(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description required"})
		return
	}

	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description required"})
		return
	}

	assignedTo := strings.TrimSpace(req.AssignedTo)
	if assignedTo != "" {
		ok, err := assigneeExists(assignedTo)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate assignee"})
			return
		}
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee not found"})
			return
		}
	}

	task := models.Task{
		ID:           uuid.NewString(),
		Description:  desc,
		Status:       models.StatusPending,
		OwnerID:      userID,
		AssignedToID: assignedTo,
		CreatedAt:    time.Now(),
	}

	if err := database.GetDB().Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	broadcastTaskEvent("task_created", &task)

	c.JSON(http.StatusCreated, task)
}

// UpdateTask handles PATCH /api/tasks/:id
// Updates the description, status or assignee of a visible task. Archived
// tasks are frozen: any mutation attempt is rejected.
func UpdateTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return
	}

	task, ok := findVisibleTask(c, taskID)
	if !ok {
		return
	}

	if task.Archived {
		c.JSON(http.StatusConflict, gin.H{"error": "Archived tasks cannot be modified"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Description != nil {
		desc := strings.TrimSpace(*req.Description)
		if desc == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Description cannot be empty"})
			return
		}
		task.Description = desc
	}

	if req.Status != nil {
		status, valid := models.NormalizeStatus(*req.Status)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		task.Status = status
	}

	if req.AssignedTo != nil {
		assignedTo := strings.TrimSpace(*req.AssignedTo)
		if assignedTo != "" {
			exists, err := assigneeExists(assignedTo)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate assignee"})
				return
			}
			if !exists {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Assignee not found"})
				return
			}
		}
		task.AssignedToID = assignedTo
	}

	if err := database.GetDB().Save(task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	broadcastTaskEvent("task_updated", task)

	c.JSON(http.StatusOK, task)
}

// ArchiveTask handles PATCH /api/tasks/:id/archive
// One-way transition: only completed tasks can be archived, and archiving is
// terminal. ArchivedAt is set exactly once, on the false to true transition.
func ArchiveTask(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return
	}

	task, ok := findVisibleTask(c, taskID)
	if !ok {
		return
	}

	if task.Archived {
		c.JSON(http.StatusConflict, gin.H{"error": "Task is already archived"})
		return
	}
	if task.Status != models.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only completed tasks can be archived"})
		return
	}

	now := time.Now()
	task.Archived = true
	task.ArchivedAt = &now

	if err := database.GetDB().Save(task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive task"})
		return
	}

	broadcastTaskEvent("task_archived", task)

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
// Hard-deletes a task. Only the owner or an admin may delete.
func DeleteTask(c *gin.Context) {
	userID := c.GetString("user_id")
	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return
	}

	query := database.GetDB().Where("id = ?", taskID)
	if !isAdminRequest(c) {
		query = query.Where("owner_id = ?", userID)
	}

	var task models.Task
	if err := query.First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	if err := database.GetDB().Delete(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	broadcastTaskEvent("task_deleted", &task)

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}
