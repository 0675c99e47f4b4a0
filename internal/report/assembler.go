package report

import (
	"context"
	"fmt"
	"time"

	"kanban-board-api/internal/models"
)

// TaskFinder is the query capability the assembler needs from storage:
// return the tasks matching the predicate, ordered per the sort.
type TaskFinder interface {
	FindTasks(ctx context.Context, pred Predicate, sort Sort) ([]models.Task, error)
}

// LabelResolver resolves user ids to display labels. Unknown ids are simply
// absent from the result map.
type LabelResolver interface {
	Labels(ctx context.Context, ids []string) (map[string]string, error)
}

// DateRange echoes the applied createdAt interval, formatted as dates.
type DateRange struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

// Filters echoes the configuration a report was actually generated with:
// resolved values after whitelisting and defaulting, not the raw request.
type Filters struct {
	IncludeArchived bool      `json:"includeArchived"`
	AssigneeFilter  string    `json:"userId"`
	DateRange       DateRange `json:"dateRange"`
	SortBy          string    `json:"sortBy"`
	SortOrder       string    `json:"sortOrder"`
}

// Report is the full report payload: aggregate counts plus the underlying
// task sequence for downstream export.
type Report struct {
	TotalTasks int                  `json:"totalTasks"`
	ByStatus   StatusCounts         `json:"byStatus"`
	ByUser     map[string]UserStats `json:"byUser"`
	Tasks      []models.Task        `json:"tasks"`
	Filters    Filters              `json:"filters"`
}

// Assembler wires the resolvers and aggregator to an injected task store and
// user lookup.
type Assembler struct {
	tasks  TaskFinder
	labels LabelResolver
}

func NewAssembler(tasks TaskFinder, labels LabelResolver) *Assembler {
	return &Assembler{tasks: tasks, labels: labels}
}

// Generate runs the full pipeline: resolve filter and sort, fetch the
// matching tasks, resolve assignee labels, aggregate, and package the result
// with an echo of the effective configuration.
func (a *Assembler) Generate(ctx context.Context, req ReportRequest) (*Report, error) {
	pred := ResolveFilter(req)
	sort := ResolveSort(req.SortBy, req.SortOrder)

	tasks, err := a.tasks.FindTasks(ctx, pred, sort)
	if err != nil {
		return nil, fmt.Errorf("generate report: fetch tasks: %w", err)
	}

	rows, err := a.resolveRows(ctx, tasks)
	if err != nil {
		return nil, fmt.Errorf("generate report: resolve assignees: %w", err)
	}

	stats := Aggregate(rows)

	return &Report{
		TotalTasks: stats.TotalTasks,
		ByStatus:   stats.ByStatus,
		ByUser:     stats.ByUser,
		Tasks:      tasks,
		Filters: Filters{
			IncludeArchived: req.IncludeArchived,
			AssigneeFilter:  req.AssigneeFilter,
			DateRange: DateRange{
				StartDate: formatDate(req.StartDate),
				EndDate:   formatDate(req.EndDate),
			},
			SortBy:    sort.Field,
			SortOrder: sort.Order(),
		},
	}, nil
}

func (a *Assembler) resolveRows(ctx context.Context, tasks []models.Task) ([]TaskRow, error) {
	ids := make([]string, 0, len(tasks))
	seen := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		if t.AssignedToID == "" {
			continue
		}
		if _, ok := seen[t.AssignedToID]; ok {
			continue
		}
		seen[t.AssignedToID] = struct{}{}
		ids = append(ids, t.AssignedToID)
	}

	labels := map[string]string{}
	if len(ids) > 0 {
		var err error
		labels, err = a.labels.Labels(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	rows := make([]TaskRow, len(tasks))
	for i, t := range tasks {
		rows[i] = TaskRow{
			Task:          t,
			AssigneeLabel: labels[t.AssignedToID],
		}
	}
	return rows, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
