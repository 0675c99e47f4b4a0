package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveSort_WhitelistedFields(t *testing.T) {
	for _, field := range []string{SortByCreatedAt, SortByDescription, SortByStatus, SortByUser} {
		require.Equal(t, field, ResolveSort(field, "desc").Field)
	}
}

func TestResolveSort_UnknownFieldDefaultsToCreatedAt(t *testing.T) {
	require.Equal(t, SortByCreatedAt, ResolveSort("priority", "asc").Field)
	require.Equal(t, SortByCreatedAt, ResolveSort("", "").Field)
	require.Equal(t, SortByCreatedAt, ResolveSort("CREATEDAT", "").Field)
}

func TestResolveSort_Direction(t *testing.T) {
	require.True(t, ResolveSort("status", "asc").Ascending)
	require.False(t, ResolveSort("status", "desc").Ascending)
	require.False(t, ResolveSort("status", "").Ascending)
	require.False(t, ResolveSort("status", "ASC").Ascending)

	require.Equal(t, "asc", ResolveSort("status", "asc").Order())
	require.Equal(t, "desc", ResolveSort("status", "anything").Order())
}
