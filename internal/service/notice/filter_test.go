package notice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecowatch/notice-api/internal/model"
)

// The reference instant used by every time-window test.
var testNow = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

func sampleRecords() []model.Notification {
	return []model.Notification{
		{
			ID:             "A",
			Title:          "重点流域水污染防治项目指南",
			Summary:        "指南全文",
			Department:     "生态环境部",
			DepartmentCode: "EPA",
			PublishDate:    "2024-01-10",
			Category:       model.CategoryPolicyRelease,
			Tags:           []string{"x"},
			Keywords:       []string{"水污染"},
		},
		{
			ID:             "B",
			Title:          "绿色制造专项资金申报",
			Summary:        "资金申报流程",
			Department:     "财政部",
			DepartmentCode: "MOF",
			PublishDate:    "2024-01-12",
			Deadline:       "2024-01-20",
			Category:       model.CategoryProjectCall,
			Tags:           []string{},
			IsFavorited:    true,
		},
		{
			ID:             "C",
			Title:          "Carbon Neutrality 标准征求意见",
			Summary:        "征求社会意见",
			Department:     "生态环境部",
			DepartmentCode: "EPA",
			PublishDate:    "2024-01-12",
			Deadline:       "2024-03-01",
			Category:       model.CategoryConsultation,
			Tags:           []string{"standards"},
		},
	}
}

func ids(records []model.Notification) []string {
	out := make([]string, len(records))
	for i, n := range records {
		out[i] = n.ID
	}
	return out
}

func TestFilterEmptyCriteriaIsIdentity(t *testing.T) {
	records := sampleRecords()
	got := Filter(records, model.FilterCriteria{})
	assert.Equal(t, records, got)
}

func TestFilterByDepartment(t *testing.T) {
	got := Filter(sampleRecords(), model.FilterCriteria{
		SelectedDepartments: []string{"EPA"},
	})
	assert.Equal(t, []string{"A", "C"}, ids(got))
}

func TestFilterBySearchQuery(t *testing.T) {
	// Hits tag "x" on A only.
	got := Filter(sampleRecords(), model.FilterCriteria{SearchQuery: "x"})
	assert.Equal(t, []string{"A"}, ids(got))

	// Keyword match.
	got = Filter(sampleRecords(), model.FilterCriteria{SearchQuery: "水污染"})
	assert.Equal(t, []string{"A"}, ids(got))

	// ASCII folds case; the title says "Carbon Neutrality".
	got = Filter(sampleRecords(), model.FilterCriteria{SearchQuery: "carbon neutrality"})
	assert.Equal(t, []string{"C"}, ids(got))

	got = Filter(sampleRecords(), model.FilterCriteria{SearchQuery: "不存在的词"})
	assert.Empty(t, got)
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(sampleRecords(), model.FilterCriteria{
		SelectedCategories: []model.Category{model.CategoryProjectCall, model.CategoryConsultation},
	})
	assert.Equal(t, []string{"B", "C"}, ids(got))
}

func TestFilterByDateRange(t *testing.T) {
	// Both bounds inclusive.
	got := Filter(sampleRecords(), model.FilterCriteria{
		DateRange: model.DateRange{Start: "2024-01-12", End: "2024-01-12"},
	})
	assert.Equal(t, []string{"B", "C"}, ids(got))

	// Open-ended start.
	got = Filter(sampleRecords(), model.FilterCriteria{
		DateRange: model.DateRange{End: "2024-01-10"},
	})
	assert.Equal(t, []string{"A"}, ids(got))

	// Start after end is legal and yields nothing.
	got = Filter(sampleRecords(), model.FilterCriteria{
		DateRange: model.DateRange{Start: "2024-01-13", End: "2024-01-01"},
	})
	assert.Empty(t, got)
}

func TestFilterFavoritesOnly(t *testing.T) {
	got := Filter(sampleRecords(), model.FilterCriteria{FavoritesOnly: true})
	assert.Equal(t, []string{"B"}, ids(got))
}

func TestFilterIsConjunctive(t *testing.T) {
	criteria := model.FilterCriteria{
		SelectedDepartments: []string{"EPA"},
		DateRange:           model.DateRange{Start: "2024-01-11"},
	}
	got := Filter(sampleRecords(), criteria)
	assert.Equal(t, []string{"C"}, ids(got))
}

func TestFilterComposes(t *testing.T) {
	records := sampleRecords()
	c1 := model.FilterCriteria{SelectedDepartments: []string{"EPA"}}
	c2 := model.FilterCriteria{DateRange: model.DateRange{Start: "2024-01-11"}}
	combined := model.FilterCriteria{
		SelectedDepartments: c1.SelectedDepartments,
		DateRange:           c2.DateRange,
	}

	assert.Equal(t, Filter(records, combined), Filter(Filter(records, c1), c2))
}

func TestGroupByDateDescendingAndComplete(t *testing.T) {
	records := sampleRecords()
	groups := GroupByDate(records)

	require.Len(t, groups, 2)
	assert.Equal(t, "2024-01-12", groups[0].Date)
	assert.Equal(t, []string{"B", "C"}, ids(groups[0].Notifications))
	assert.Equal(t, "2024-01-10", groups[1].Date)
	assert.Equal(t, []string{"A"}, ids(groups[1].Notifications))

	// No record lost or duplicated; every member matches its group date.
	total := 0
	for _, g := range groups {
		for _, n := range g.Notifications {
			assert.Equal(t, g.Date, n.PublishDate)
		}
		total += len(g.Notifications)
	}
	assert.Equal(t, len(records), total)
}

func TestGroupByDepartmentAscending(t *testing.T) {
	groups := GroupByDepartment(sampleRecords())

	require.Len(t, groups, 2)
	assert.Equal(t, "生态环境部", groups[0].Department)
	assert.Equal(t, []string{"A", "C"}, ids(groups[0].Notifications))
	assert.Equal(t, "财政部", groups[1].Department)
	assert.Equal(t, []string{"B"}, ids(groups[1].Notifications))
}

func TestUpcomingDeadlinesWindowBoundaries(t *testing.T) {
	records := []model.Notification{
		{ID: "today", Deadline: "2024-01-15"},
		{ID: "yesterday", Deadline: "2024-01-14"},
		{ID: "edge", Deadline: "2024-02-14"},      // today + 30
		{ID: "past-edge", Deadline: "2024-02-15"}, // today + 31
		{ID: "none"},
	}

	got := UpcomingDeadlines(records, testNow, 30)
	require.Len(t, got, 2)
	assert.Equal(t, "today", got[0].ID)
	assert.Equal(t, 0, got[0].DaysLeft)
	assert.Equal(t, "edge", got[1].ID)
	assert.Equal(t, 30, got[1].DaysLeft)
}

func TestUpcomingDeadlinesSortedAscending(t *testing.T) {
	got := UpcomingDeadlines(sampleRecords(), testNow, 60)
	assert.Equal(t, []string{"B", "C"}, []string{got[0].ID, got[1].ID})
	assert.Equal(t, 5, got[0].DaysLeft)
}

func TestUpcomingDeadlinesIgnoresUnparseable(t *testing.T) {
	records := []model.Notification{{ID: "bad", Deadline: "soon"}}
	assert.Empty(t, UpcomingDeadlines(records, testNow, 30))
}

func TestFavorites(t *testing.T) {
	got := Favorites(sampleRecords())
	assert.Equal(t, []string{"B"}, ids(got))
}
