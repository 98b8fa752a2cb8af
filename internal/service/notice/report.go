package notice

import (
	"sort"
	"time"

	"github.com/ecowatch/notice-api/internal/model"
)

// CountByCategory counts occurrences per category over a record set.
func CountByCategory(records []model.Notification) map[model.Category]int {
	out := make(map[model.Category]int)
	for _, n := range records {
		out[n.Category]++
	}
	return out
}

// CountByDepartment counts occurrences per department display name.
func CountByDepartment(records []model.Notification) map[string]int {
	out := make(map[string]int)
	for _, n := range records {
		out[n.Department]++
	}
	return out
}

// TagFrequency flattens all tags across a record set and counts exact
// occurrences, sorted by count descending, ties by tag ascending.
func TagFrequency(records []model.Notification) []model.TagCount {
	counts := make(map[string]int)
	for _, n := range records {
		for _, t := range n.Tags {
			counts[t]++
		}
	}
	out := make([]model.TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, model.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// BuildPeriodReport summarizes the records published within
// [now-windowDays, now], inclusive at date granularity. The window
// length is arbitrary; the weekly and monthly presets are 7 and 30.
func BuildPeriodReport(records []model.Notification, now time.Time, windowDays int) model.PeriodReport {
	to := dateOnly(now).Format(dateLayout)
	from := dateOnly(now).AddDate(0, 0, -windowDays).Format(dateLayout)

	subset := Filter(records, model.FilterCriteria{
		DateRange: model.DateRange{Start: from, End: to},
	})

	return model.PeriodReport{
		WindowDays:    windowDays,
		From:          from,
		To:            to,
		Total:         len(subset),
		ByCategory:    CountByCategory(subset),
		ByDepartment:  CountByDepartment(subset),
		Notifications: subset,
	}
}

// BuildDashboardStats computes the overview counters shown on the
// dashboard landing page.
func BuildDashboardStats(records []model.Notification, now time.Time, deadlineWindowDays int) model.DashboardStats {
	week := BuildPeriodReport(records, now, 7)
	return model.DashboardStats{
		TotalNotifications: len(records),
		NewThisWeek:        week.Total,
		ByDepartment:       CountByDepartment(records),
		ByCategory:         CountByCategory(records),
		UpcomingDeadlines:  len(UpcomingDeadlines(records, now, deadlineWindowDays)),
	}
}
