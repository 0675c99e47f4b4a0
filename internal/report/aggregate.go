package report

import "kanban-board-api/internal/models"

// UnassignedLabel is the bucket label for tasks with no assignee.
const UnassignedLabel = "Sin asignar"

// TaskRow pairs a task with its assignee's resolved display label. An empty
// label means unassigned (or a dangling assignee reference, which presents
// the same way).
type TaskRow struct {
	Task          models.Task
	AssigneeLabel string
}

// StatusCounts breaks a task set down by board column. Completed and archived
// are disjoint: an archived task counts only toward archived even though its
// status is still completed, so "done but not yet filed away" and "filed
// away" can be reported separately.
type StatusCounts struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inprogress"`
	Completed  int `json:"completed"`
	Archived   int `json:"archived"`
}

// UserStats is the per-assignee breakdown.
type UserStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inprogress"`
	Completed  int `json:"completed"`
	Archived   int `json:"archived"`
}

// Stats is the aggregate over one report's task set.
type Stats struct {
	TotalTasks int                  `json:"totalTasks"`
	ByStatus   StatusCounts         `json:"byStatus"`
	ByUser     map[string]UserStats `json:"byUser"`
}

func (s *StatusCounts) bump(t models.Task) {
	if t.Archived {
		s.Archived++
		return
	}
	switch t.Status {
	case models.StatusPending:
		s.Pending++
	case models.StatusInProgress:
		s.InProgress++
	case models.StatusCompleted:
		s.Completed++
	}
}

// Aggregate computes per-status and per-assignee counts over an
// already-filtered, already-sorted task sequence. It trusts its input
// verbatim: no re-filtering, no re-sorting, no deduplication of assignees
// whose labels collide. Pure arithmetic; an empty input yields zero counts
// and an empty (non-nil) ByUser map.
func Aggregate(rows []TaskRow) Stats {
	stats := Stats{
		TotalTasks: len(rows),
		ByUser:     make(map[string]UserStats),
	}

	for _, row := range rows {
		stats.ByStatus.bump(row.Task)

		label := row.AssigneeLabel
		if label == "" {
			label = UnassignedLabel
		}
		u := stats.ByUser[label]
		u.Total++
		if row.Task.Archived {
			u.Archived++
		} else {
			switch row.Task.Status {
			case models.StatusPending:
				u.Pending++
			case models.StatusInProgress:
				u.InProgress++
			case models.StatusCompleted:
				u.Completed++
			}
		}
		stats.ByUser[label] = u
	}

	return stats
}
