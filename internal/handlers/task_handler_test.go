package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kanban-board-api/internal/auth"
	"kanban-board-api/internal/database"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/models"
	"kanban-board-api/internal/testutil"
)

func setupTaskRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.GET("/api/tasks", GetTasks)
	r.POST("/api/tasks", CreateTask)
	r.PATCH("/api/tasks/:id", UpdateTask)
	r.PATCH("/api/tasks/:id/archive", ArchiveTask)
	r.DELETE("/api/tasks/:id", DeleteTask)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func userToken(t *testing.T, id, username string, role models.Role) string {
	t.Helper()
	token, err := auth.GenerateToken(id, username, role)
	require.NoError(t, err)
	return token
}

func TestCreateTask_StartsPending(t *testing.T) {
	r, db := setupTaskRouter(t)
	_, err := testutil.SeedUser(db, "u-2", "bob", "", models.RoleUser)
	require.NoError(t, err)

	token := userToken(t, "u-1", "alice", models.RoleUser)
	w := doJSON(t, r, http.MethodPost, "/api/tasks", token, map[string]string{
		"desc":       "Write the report",
		"assignedTo": "u-2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, models.StatusPending, created.Status)
	require.Equal(t, "u-1", created.OwnerID)
	require.Equal(t, "u-2", created.AssignedToID)
	require.False(t, created.Archived)
}

func TestCreateTask_RequiresDescription(t *testing.T) {
	r, _ := setupTaskRouter(t)
	token := userToken(t, "u-1", "alice", models.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/api/tasks", token, map[string]string{"desc": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTask_UnknownAssigneeRejected(t *testing.T) {
	r, _ := setupTaskRouter(t)
	token := userToken(t, "u-1", "alice", models.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/api/tasks", token, map[string]string{
		"desc":       "Orphan assignment",
		"assignedTo": "ghost",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask_StatusNormalizedAndValidated(t *testing.T) {
	r, db := setupTaskRouter(t)
	_, err := testutil.SeedTask(db, "t-1", "u-1", "", models.StatusPending, false)
	require.NoError(t, err)

	token := userToken(t, "u-1", "alice", models.RoleUser)

	w := doJSON(t, r, http.MethodPatch, "/api/tasks/t-1", token, map[string]string{"status": "InProgress"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	require.Equal(t, models.StatusInProgress, updated.Status)

	w = doJSON(t, r, http.MethodPatch, "/api/tasks/t-1", token, map[string]string{"status": "blocked"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask_EmptyDescriptionRejected(t *testing.T) {
	r, db := setupTaskRouter(t)
	_, err := testutil.SeedTask(db, "t-1", "u-1", "", models.StatusPending, false)
	require.NoError(t, err)

	token := userToken(t, "u-1", "alice", models.RoleUser)
	w := doJSON(t, r, http.MethodPatch, "/api/tasks/t-1", token, map[string]string{"desc": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTask_NotVisibleToStranger(t *testing.T) {
	r, db := setupTaskRouter(t)
	_, err := testutil.SeedTask(db, "t-1", "u-1", "", models.StatusPending, false)
	require.NoError(t, err)

	token := userToken(t, "u-9", "mallory", models.RoleUser)
	w := doJSON(t, r, http.MethodPatch, "/api/tasks/t-1", token, map[string]string{"desc": "hijack"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestArchiveTask_OnlyFromCompleted(t *testing.T) {
	r, db := setupTaskRouter(t)
	_, err := testutil.SeedTask(db, "t-pending", "u-1", "", models.StatusPending, false)
	require.NoError(t, err)
	_, err = testutil.SeedTask(db, "t-done", "u-1", "", models.StatusCompleted, false)
	require.NoError(t, err)

	token := userToken(t, "u-1", "alice", models.RoleUser)

	w := doJSON(t, r, http.MethodPatch, "/api/tasks/t-pending/archive", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/tasks/t-done/archive", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var archived models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &archived))
	require.True(t, archived.Archived)
	require.NotNil(t, archived.ArchivedAt)
	require.Equal(t, models.StatusCompleted, archived.Status)
}

func TestArchiveTask_Terminal(t *testing.T) {
	r, db := setupTaskRouter(t)
	_, err := testutil.SeedTask(db, "t-1", "u-1", "", models.StatusCompleted, true)
	require.NoError(t, err)

	token := userToken(t, "u-1", "alice", models.RoleUser)

	// Re-archiving and any further mutation are both rejected.
	w := doJSON(t, r, http.MethodPatch, "/api/tasks/t-1/archive", token, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/tasks/t-1", token, map[string]string{"status": "pending"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestGetTasks_RoleScoping(t *testing.T) {
	r, db := setupTaskRouter(t)
	_, err := testutil.SeedTask(db, "owned", "u-1", "", models.StatusPending, false)
	require.NoError(t, err)
	_, err = testutil.SeedTask(db, "assigned", "u-9", "u-1", models.StatusPending, false)
	require.NoError(t, err)
	_, err = testutil.SeedTask(db, "foreign", "u-9", "", models.StatusPending, false)
	require.NoError(t, err)

	var listed struct {
		Tasks []models.Task `json:"tasks"`
		Count int           `json:"count"`
	}

	w := doJSON(t, r, http.MethodGet, "/api/tasks", userToken(t, "u-1", "alice", models.RoleUser), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Equal(t, 2, listed.Count)

	w = doJSON(t, r, http.MethodGet, "/api/tasks", userToken(t, "a-1", "root", models.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Equal(t, 3, listed.Count)
}

func TestGetTasks_ArchivedHiddenByDefault(t *testing.T) {
	r, db := setupTaskRouter(t)
	_, err := testutil.SeedTask(db, "active", "u-1", "", models.StatusPending, false)
	require.NoError(t, err)
	_, err = testutil.SeedTask(db, "filed", "u-1", "", models.StatusCompleted, true)
	require.NoError(t, err)

	token := userToken(t, "u-1", "alice", models.RoleUser)

	var listed struct {
		Count int `json:"count"`
	}

	w := doJSON(t, r, http.MethodGet, "/api/tasks", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Equal(t, 1, listed.Count)

	w = doJSON(t, r, http.MethodGet, "/api/tasks?includeArchived=true", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Equal(t, 2, listed.Count)
}

func TestDeleteTask_OwnerOnly(t *testing.T) {
	r, db := setupTaskRouter(t)
	_, err := testutil.SeedTask(db, "t-1", "u-1", "u-2", models.StatusPending, false)
	require.NoError(t, err)

	// The assignee cannot delete, the owner can.
	w := doJSON(t, r, http.MethodDelete, "/api/tasks/t-1", userToken(t, "u-2", "bob", models.RoleUser), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/tasks/t-1", userToken(t, "u-1", "alice", models.RoleUser), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	require.Zero(t, count)
}
