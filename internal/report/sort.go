package report

// Sortable report fields. "desc" is the task description field (legacy wire
// name), "user" sorts by assignee.
const (
	SortByCreatedAt   = "createdAt"
	SortByDescription = "desc"
	SortByStatus      = "status"
	SortByUser        = "user"
)

// Sort is a validated sort configuration: a whitelisted field plus direction.
type Sort struct {
	Field     string
	Ascending bool
}

// Order returns the wire form of the direction.
func (s Sort) Order() string {
	if s.Ascending {
		return "asc"
	}
	return "desc"
}

// ResolveSort validates a requested sort key against the whitelist, falling
// back to createdAt on anything unrecognized. Direction is ascending only for
// the exact value "asc"; anything else, including empty, sorts descending.
// Never fails.
func ResolveSort(sortBy, sortOrder string) Sort {
	field := SortByCreatedAt
	switch sortBy {
	case SortByCreatedAt, SortByDescription, SortByStatus, SortByUser:
		field = sortBy
	}

	return Sort{
		Field:     field,
		Ascending: sortOrder == "asc",
	}
}
