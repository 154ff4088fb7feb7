package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestSortForDisplayOrderWins(t *testing.T) {
	projects := []Project{
		{Title: "c", Year: 2025, Order: intPtr(3)},
		{Title: "a", Year: 2020, Order: intPtr(1)},
		{Title: "b", Year: 2023, Order: intPtr(2)},
	}

	SortForDisplay(projects)

	assert.Equal(t, "a", projects[0].Title)
	assert.Equal(t, "b", projects[1].Title)
	assert.Equal(t, "c", projects[2].Title)
}

func TestSortForDisplayYearBreaksTies(t *testing.T) {
	projects := []Project{
		{Title: "old", Year: 2019, Order: intPtr(1)},
		{Title: "new", Year: 2024, Order: intPtr(1)},
	}

	SortForDisplay(projects)

	assert.Equal(t, "new", projects[0].Title)
	assert.Equal(t, "old", projects[1].Title)
}

func TestSortForDisplayAbsentOrderSortsLast(t *testing.T) {
	projects := []Project{
		{Title: "unordered-new", Year: 2026},
		{Title: "ordered", Year: 2015, Order: intPtr(7)},
		{Title: "unordered-old", Year: 2018},
	}

	SortForDisplay(projects)

	assert.Equal(t, "ordered", projects[0].Title)
	// among unordered projects, newer year first
	assert.Equal(t, "unordered-new", projects[1].Title)
	assert.Equal(t, "unordered-old", projects[2].Title)
}

func TestGroupByCategoryMultiMembership(t *testing.T) {
	projects := []Project{
		{Title: "both", Category: []Category{CategoryVR, CategoryGameJam}},
		{Title: "solo", Category: []Category{CategoryStandalone}},
	}

	grouped := GroupByCategory(projects)

	require.Len(t, grouped[CategoryVR], 1)
	require.Len(t, grouped[CategoryGameJam], 1)
	require.Len(t, grouped[CategoryStandalone], 1)

	assert.Equal(t, "both", grouped[CategoryVR][0].Title)
	assert.Equal(t, "both", grouped[CategoryGameJam][0].Title)
	assert.Equal(t, "solo", grouped[CategoryStandalone][0].Title)

	// a project appears in no group it doesn't belong to
	for _, p := range grouped[CategoryStandalone] {
		assert.NotEqual(t, "both", p.Title)
	}
}
