package model

// DateRange is an inclusive publish-date window. Either bound may be
// empty, which leaves that side open. Bounds are ISO dates compared
// lexicographically, which matches chronological order.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// FilterCriteria is the per-request query state. A zero criteria
// matches everything; each field only restricts the result when it is
// non-empty (non-false). All active criteria must hold at once.
type FilterCriteria struct {
	SearchQuery         string     `json:"searchQuery,omitempty"`
	SelectedDepartments []string   `json:"selectedDepartments,omitempty"`
	SelectedCategories  []Category `json:"selectedCategories,omitempty"`
	DateRange           DateRange  `json:"dateRange,omitempty"`
	FavoritesOnly       bool       `json:"favoritesOnly,omitempty"`
}

// Empty reports whether no criterion is active.
func (c FilterCriteria) Empty() bool {
	return c.SearchQuery == "" &&
		len(c.SelectedDepartments) == 0 &&
		len(c.SelectedCategories) == 0 &&
		c.DateRange.Start == "" && c.DateRange.End == "" &&
		!c.FavoritesOnly
}

// DateGroup is one timeline bucket: every member shares PublishDate == Date.
type DateGroup struct {
	Date          string         `json:"date"`
	Notifications []Notification `json:"notifications"`
}

// DepartmentGroup buckets records by department display name.
type DepartmentGroup struct {
	Department    string         `json:"department"`
	Notifications []Notification `json:"notifications"`
}

// DeadlineEntry is an upcoming-deadline listing row. DaysLeft is the
// whole days from the reference date to the deadline (0 = due today).
type DeadlineEntry struct {
	Notification
	DaysLeft int `json:"daysLeft"`
}
