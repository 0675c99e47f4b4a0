package report

import "time"

// Predicate is the storage-level constraint a report request resolves to.
// Zero-valued fields mean "no constraint".
type Predicate struct {
	// ExcludeArchived drops archived tasks unless the request opted in.
	ExcludeArchived bool

	// AssigneeID restricts to tasks assigned to this user.
	AssigneeID string

	// VisibleToID restricts to tasks owned by or assigned to this user.
	// Always set for non-admin actors; permission scoping is mandatory and
	// combines with any explicit assignee filter instead of replacing it.
	VisibleToID string

	// CreatedFrom / CreatedTo form an inclusive closed interval on createdAt.
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ResolveFilter turns a typed report request into a Predicate.
// Pure transformation, no side effects.
func ResolveFilter(req ReportRequest) Predicate {
	pred := Predicate{
		ExcludeArchived: !req.IncludeArchived,
	}

	if req.AssigneeFilter != "" && req.AssigneeFilter != AssigneeAll {
		pred.AssigneeID = req.AssigneeFilter
	}

	if !req.Actor.IsAdmin() {
		pred.VisibleToID = req.Actor.ID
	}

	if req.StartDate != nil {
		from := startOfDay(*req.StartDate)
		pred.CreatedFrom = &from
	}
	if req.EndDate != nil {
		to := endOfDay(*req.EndDate)
		pred.CreatedTo = &to
	}

	return pred
}
