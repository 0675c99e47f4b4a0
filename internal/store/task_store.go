package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"kanban-board-api/internal/models"
	"kanban-board-api/internal/report"
)

// sortColumns maps whitelisted report sort fields to table columns.
var sortColumns = map[string]string{
	report.SortByCreatedAt:   "created_at",
	report.SortByDescription: "description",
	report.SortByStatus:      "status",
	report.SortByUser:        "assigned_to_id",
}

// TaskStore implements report.TaskFinder on top of gorm.
type TaskStore struct {
	db *gorm.DB
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

// FindTasks translates a report predicate into a query and returns the
// matching tasks in the requested order.
func (s *TaskStore) FindTasks(ctx context.Context, pred report.Predicate, sort report.Sort) ([]models.Task, error) {
	query := s.db.WithContext(ctx).Model(&models.Task{})

	if pred.ExcludeArchived {
		query = query.Where("archived = ?", false)
	}
	if pred.AssigneeID != "" {
		query = query.Where("assigned_to_id = ?", pred.AssigneeID)
	}
	if pred.VisibleToID != "" {
		query = query.Where("owner_id = ? OR assigned_to_id = ?", pred.VisibleToID, pred.VisibleToID)
	}
	if pred.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *pred.CreatedFrom)
	}
	if pred.CreatedTo != nil {
		query = query.Where("created_at <= ?", *pred.CreatedTo)
	}

	column, ok := sortColumns[sort.Field]
	if !ok {
		column = "created_at"
	}
	order := fmt.Sprintf("%s %s", column, sort.Order())

	var tasks []models.Task
	if err := query.Order(order).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

var _ report.TaskFinder = (*TaskStore)(nil)
