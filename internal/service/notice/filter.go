package notice

import (
	"sort"
	"strings"
	"time"

	"github.com/ecowatch/notice-api/internal/model"
)

const dateLayout = "2006-01-02"

// Filter returns the subsequence of records satisfying every active
// criterion, in the original order. Inactive criteria impose no
// restriction, so a zero criteria returns the input unchanged in
// membership and order.
func Filter(records []model.Notification, c model.FilterCriteria) []model.Notification {
	out := make([]model.Notification, 0, len(records))
	query := strings.ToLower(c.SearchQuery)
	for _, n := range records {
		if matches(&n, &c, query) {
			out = append(out, n)
		}
	}
	return out
}

func matches(n *model.Notification, c *model.FilterCriteria, query string) bool {
	if query != "" && !strings.Contains(searchText(n), query) {
		return false
	}
	if len(c.SelectedDepartments) > 0 && !containsString(c.SelectedDepartments, n.DepartmentCode) {
		return false
	}
	if len(c.SelectedCategories) > 0 && !containsCategory(c.SelectedCategories, n.Category) {
		return false
	}
	if c.DateRange.Start != "" && n.PublishDate < c.DateRange.Start {
		return false
	}
	if c.DateRange.End != "" && n.PublishDate > c.DateRange.End {
		return false
	}
	if c.FavoritesOnly && !n.IsFavorited {
		return false
	}
	return true
}

// searchText concatenates the searchable fields into one case-folded
// string. Folding is plain lowercasing; on the Chinese payload it is a
// no-op, ASCII portions of mixed titles still fold.
func searchText(n *model.Notification) string {
	fields := make([]string, 0, 3+len(n.Tags)+len(n.Keywords))
	fields = append(fields, n.Title, n.Summary, n.Department)
	fields = append(fields, n.Tags...)
	fields = append(fields, n.Keywords...)
	return strings.ToLower(strings.Join(fields, " "))
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsCategory(set []model.Category, v model.Category) bool {
	for _, c := range set {
		if c == v {
			return true
		}
	}
	return false
}

// GroupByDate partitions records by exact publish date, most recent
// date first. Within a group the input order is preserved.
func GroupByDate(records []model.Notification) []model.DateGroup {
	groups := make(map[string][]model.Notification)
	for _, n := range records {
		groups[n.PublishDate] = append(groups[n.PublishDate], n)
	}
	out := make([]model.DateGroup, 0, len(groups))
	for date, members := range groups {
		out = append(out, model.DateGroup{Date: date, Notifications: members})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// GroupByDepartment partitions records by department display name,
// sorted ascending by name. Within a group the input order is preserved.
func GroupByDepartment(records []model.Notification) []model.DepartmentGroup {
	groups := make(map[string][]model.Notification)
	for _, n := range records {
		groups[n.Department] = append(groups[n.Department], n)
	}
	out := make([]model.DepartmentGroup, 0, len(groups))
	for dept, members := range groups {
		out = append(out, model.DepartmentGroup{Department: dept, Notifications: members})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// UpcomingDeadlines selects records whose deadline falls within
// [today, today+windowDays], both ends inclusive at date granularity,
// sorted ascending by deadline. The reference instant is taken once so
// every comparison in one call sees the same "today". Records without a
// deadline, or with one that does not parse, are skipped.
func UpcomingDeadlines(records []model.Notification, now time.Time, windowDays int) []model.DeadlineEntry {
	today := dateOnly(now)
	last := today.AddDate(0, 0, windowDays)
	out := make([]model.DeadlineEntry, 0)
	for _, n := range records {
		if n.Deadline == "" {
			continue
		}
		deadline, err := time.Parse(dateLayout, n.Deadline)
		if err != nil {
			continue
		}
		if deadline.Before(today) || deadline.After(last) {
			continue
		}
		out = append(out, model.DeadlineEntry{
			Notification: n,
			DaysLeft:     int(deadline.Sub(today).Hours() / 24),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Deadline < out[j].Deadline })
	return out
}

// Favorites selects every favorited record in collection order.
func Favorites(records []model.Notification) []model.Notification {
	out := make([]model.Notification, 0)
	for _, n := range records {
		if n.IsFavorited {
			out = append(out, n)
		}
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
