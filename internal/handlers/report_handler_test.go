package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"kanban-board-api/internal/database"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/models"
	"kanban-board-api/internal/report"
	"kanban-board-api/internal/store"
	"kanban-board-api/internal/testutil"
)

func setupReportRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	assembler := report.NewAssembler(store.NewTaskStore(db), store.NewUserLabelResolver(db))
	h := NewReportHandler(assembler)

	r := gin.New()
	r.Use(middleware.JWTAuthMiddleware())
	r.GET("/api/report", h.Generate)
	return r
}

func TestReport_EndToEnd(t *testing.T) {
	r := setupReportRouter(t)
	db := database.GetDB()

	_, err := testutil.SeedUser(db, "u-1", "ana", "Ana", models.RoleUser)
	require.NoError(t, err)
	_, err = testutil.SeedTask(db, "t-1", "a-1", "u-1", models.StatusPending, false)
	require.NoError(t, err)
	_, err = testutil.SeedTask(db, "t-2", "a-1", "u-1", models.StatusCompleted, true)
	require.NoError(t, err)
	_, err = testutil.SeedTask(db, "t-3", "a-1", "", models.StatusInProgress, false)
	require.NoError(t, err)

	token := userToken(t, "a-1", "root", models.RoleAdmin)

	w := doJSON(t, r, http.MethodGet, "/api/report?includeArchived=true&sortBy=status&sortOrder=asc", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))

	require.Equal(t, 3, rep.TotalTasks)
	require.Equal(t, 1, rep.ByStatus.Pending)
	require.Equal(t, 1, rep.ByStatus.InProgress)
	require.Equal(t, 0, rep.ByStatus.Completed) // archived excluded
	require.Equal(t, 1, rep.ByStatus.Archived)

	require.Equal(t, 2, rep.ByUser["Ana"].Total)
	require.Equal(t, 1, rep.ByUser["Ana"].Archived)
	require.Equal(t, 1, rep.ByUser[report.UnassignedLabel].Total)

	require.True(t, rep.Filters.IncludeArchived)
	require.Equal(t, report.SortByStatus, rep.Filters.SortBy)
	require.Equal(t, "asc", rep.Filters.SortOrder)
	require.Len(t, rep.Tasks, 3)
}

func TestReport_NonAdminScoped(t *testing.T) {
	r := setupReportRouter(t)
	db := database.GetDB()

	_, err := testutil.SeedTask(db, "mine", "u-1", "", models.StatusPending, false)
	require.NoError(t, err)
	_, err = testutil.SeedTask(db, "foreign", "u-9", "", models.StatusPending, false)
	require.NoError(t, err)

	token := userToken(t, "u-1", "alice", models.RoleUser)

	w := doJSON(t, r, http.MethodGet, "/api/report", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	require.Equal(t, 1, rep.TotalTasks)
	require.Equal(t, "mine", rep.Tasks[0].ID)
}

func TestReport_InvalidSortKeyDegrades(t *testing.T) {
	r := setupReportRouter(t)
	token := userToken(t, "u-1", "alice", models.RoleUser)

	w := doJSON(t, r, http.MethodGet, "/api/report?sortBy=priority", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	require.Equal(t, report.SortByCreatedAt, rep.Filters.SortBy)
}

func TestReport_MalformedDateRejected(t *testing.T) {
	r := setupReportRouter(t)
	token := userToken(t, "u-1", "alice", models.RoleUser)

	w := doJSON(t, r, http.MethodGet, "/api/report?startDate=garbage", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
