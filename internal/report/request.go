// Package report implements the task-report engine: resolving a report
// request into a storage predicate and sort order, aggregating the fetched
// tasks into per-status and per-assignee counts, and assembling the final
// report payload. The package is pure with respect to storage; fetching and
// label lookup happen behind the TaskFinder and LabelResolver interfaces.
package report

import (
	"fmt"
	"net/url"
	"time"

	"kanban-board-api/internal/models"
)

// AssigneeAll is the sentinel meaning "no assignee filter".
const AssigneeAll = "all"

// Actor identifies the user requesting a report, for permission scoping.
type Actor struct {
	ID   string
	Role models.Role
}

// IsAdmin reports whether the actor may see tasks beyond their own.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// ReportRequest is the typed form of a report query. Query-string values are
// only converted here; everything downstream works with this struct.
type ReportRequest struct {
	IncludeArchived bool
	AssigneeFilter  string // user id or AssigneeAll
	StartDate       *time.Time
	EndDate         *time.Time
	SortBy          string // raw; whitelisted by ResolveSort
	SortOrder       string
	Actor           Actor
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
}

// ParseReportRequest converts raw query values into a ReportRequest.
// Booleans are strict: only the literal "true" enables includeArchived.
// Malformed dates are rejected here rather than silently matching nothing.
func ParseReportRequest(values url.Values, actor Actor) (ReportRequest, error) {
	req := ReportRequest{
		IncludeArchived: values.Get("includeArchived") == "true",
		AssigneeFilter:  AssigneeAll,
		SortBy:          values.Get("sortBy"),
		SortOrder:       values.Get("sortOrder"),
		Actor:           actor,
	}

	// The web client historically sent the assignee filter as "userId".
	assignee := values.Get("userId")
	if assignee == "" {
		assignee = values.Get("user")
	}
	if assignee != "" {
		req.AssigneeFilter = assignee
	}

	if raw := values.Get("startDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return ReportRequest{}, fmt.Errorf("startDate: %w", err)
		}
		req.StartDate = &t
	}
	if raw := values.Get("endDate"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return ReportRequest{}, fmt.Errorf("endDate: %w", err)
		}
		req.EndDate = &t
	}

	return req, nil
}
