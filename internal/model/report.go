package model

// PeriodReport summarizes the notices published in a trailing window of
// WindowDays days ending at the reference date, both ends inclusive.
type PeriodReport struct {
	WindowDays    int              `json:"windowDays"`
	From          string           `json:"from"`
	To            string           `json:"to"`
	Total         int              `json:"total"`
	ByCategory    map[Category]int `json:"byCategory"`
	ByDepartment  map[string]int   `json:"byDepartment"`
	Notifications []Notification   `json:"notifications"`
}

// DashboardStats backs the overview cards of the dashboard.
type DashboardStats struct {
	TotalNotifications int              `json:"totalNotifications"`
	NewThisWeek        int              `json:"newThisWeek"`
	ByDepartment       map[string]int   `json:"byDepartment"`
	ByCategory         map[Category]int `json:"byCategory"`
	UpcomingDeadlines  int              `json:"upcomingDeadlines"`
}

// TagCount is one row of a tag-frequency listing.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Feed is the document the scraper produces and the loader consumes.
type Feed struct {
	LastUpdate    string         `json:"lastUpdate"`
	Notifications []Notification `json:"notifications"`
	// Policies is the legacy name of the array in older feed files.
	Policies []Notification `json:"policies,omitempty"`
}

// Preferences is a previously saved user-state overlay, merged onto
// matching records at load time. Overlay values win for the
// user-authored fields; ids with no matching record are ignored.
type Preferences struct {
	FavoriteIDs []string            `json:"favoriteIds"`
	Notes       map[string]string   `json:"notes"`
	Tags        map[string][]string `json:"tags"`
}
