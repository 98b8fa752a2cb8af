package notice

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ecowatch/notice-api/internal/model"
	"github.com/ecowatch/notice-api/internal/store"
	"github.com/ecowatch/notice-api/pkg/metrics"
)

const statsCacheKey = "dashboard_stats"

// Service is the query and mutation surface over the notice collection.
// Reads are computed from a consistent snapshot per call; the reference
// instant for every time-window computation is captured once per call
// from the injected clock.
type Service interface {
	List(criteria model.FilterCriteria) []model.Notification
	Get(id string) (model.Notification, error)
	Timeline(criteria model.FilterCriteria) []model.DateGroup
	Departments(criteria model.FilterCriteria) []model.DepartmentGroup
	UpcomingDeadlines(windowDays int) []model.DeadlineEntry
	Favorites() []model.Notification
	TagFrequency(criteria model.FilterCriteria) []model.TagCount
	Stats() model.DashboardStats
	Report(windowDays int) model.PeriodReport

	ToggleFavorite(id string) (model.Notification, error)
	SetNote(id, text string) (model.Notification, error)
	AddTag(id, tag string) (model.Notification, error)
	RemoveTag(id, tag string) (model.Notification, error)

	Count() int
	LastUpdate() string
}

type service struct {
	store              *store.Store
	now                func() time.Time
	metrics            *metrics.Metrics
	statsCache         *gocache.Cache
	deadlineWindowDays int
}

// NewService wires the engine over a loaded store. now supplies the
// reference clock (time.Now in production, fixed in tests); statsTTL
// bounds how stale the cached dashboard stats may get, and the cache is
// flushed on every mutation anyway.
func NewService(st *store.Store, now func() time.Time, m *metrics.Metrics, statsTTL time.Duration, deadlineWindowDays int) Service {
	s := &service{
		store:              st,
		now:                now,
		metrics:            m,
		statsCache:         gocache.New(statsTTL, 2*statsTTL),
		deadlineWindowDays: deadlineWindowDays,
	}
	m.CollectionSize.Set(float64(st.Len()))
	m.FavoritedNotices.Set(float64(st.FavoriteCount()))
	return s
}

func (s *service) List(criteria model.FilterCriteria) []model.Notification {
	defer s.observe("list")()
	out := Filter(s.store.Snapshot(), criteria)
	s.metrics.QueryResults.WithLabelValues("list").Observe(float64(len(out)))
	return out
}

func (s *service) Get(id string) (model.Notification, error) {
	n, err := s.store.Get(id)
	if err != nil {
		return model.Notification{}, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

func (s *service) Timeline(criteria model.FilterCriteria) []model.DateGroup {
	defer s.observe("timeline")()
	return GroupByDate(Filter(s.store.Snapshot(), criteria))
}

func (s *service) Departments(criteria model.FilterCriteria) []model.DepartmentGroup {
	defer s.observe("departments")()
	return GroupByDepartment(Filter(s.store.Snapshot(), criteria))
}

// UpcomingDeadlines deliberately ignores filter criteria: the deadline
// rail always reflects the whole collection.
func (s *service) UpcomingDeadlines(windowDays int) []model.DeadlineEntry {
	defer s.observe("deadlines")()
	if windowDays <= 0 {
		windowDays = s.deadlineWindowDays
	}
	return UpcomingDeadlines(s.store.Snapshot(), s.now(), windowDays)
}

func (s *service) Favorites() []model.Notification {
	defer s.observe("favorites")()
	return Favorites(s.store.Snapshot())
}

func (s *service) TagFrequency(criteria model.FilterCriteria) []model.TagCount {
	defer s.observe("tags")()
	return TagFrequency(Filter(s.store.Snapshot(), criteria))
}

func (s *service) Stats() model.DashboardStats {
	if cached, ok := s.statsCache.Get(statsCacheKey); ok {
		s.metrics.StatsCacheHits.Inc()
		return cached.(model.DashboardStats)
	}
	s.metrics.StatsCacheMiss.Inc()
	defer s.observe("stats")()
	stats := BuildDashboardStats(s.store.Snapshot(), s.now(), s.deadlineWindowDays)
	s.statsCache.Set(statsCacheKey, stats, gocache.DefaultExpiration)
	return stats
}

func (s *service) Report(windowDays int) model.PeriodReport {
	defer s.observe("report")()
	return BuildPeriodReport(s.store.Snapshot(), s.now(), windowDays)
}

func (s *service) ToggleFavorite(id string) (model.Notification, error) {
	n, err := s.mutate("toggle_favorite", func() (model.Notification, error) {
		return s.store.ToggleFavorite(id)
	})
	if err != nil {
		return model.Notification{}, err
	}
	s.metrics.FavoritedNotices.Set(float64(s.store.FavoriteCount()))
	return n, nil
}

func (s *service) SetNote(id, text string) (model.Notification, error) {
	return s.mutate("set_note", func() (model.Notification, error) {
		return s.store.SetNote(id, text)
	})
}

func (s *service) AddTag(id, tag string) (model.Notification, error) {
	return s.mutate("add_tag", func() (model.Notification, error) {
		return s.store.AddTag(id, tag)
	})
}

func (s *service) RemoveTag(id, tag string) (model.Notification, error) {
	return s.mutate("remove_tag", func() (model.Notification, error) {
		return s.store.RemoveTag(id, tag)
	})
}

func (s *service) Count() int {
	return s.store.Len()
}

func (s *service) LastUpdate() string {
	return s.store.LastUpdate()
}

func (s *service) mutate(operation string, fn func() (model.Notification, error)) (model.Notification, error) {
	n, err := fn()
	if err != nil {
		s.metrics.MutationErrors.WithLabelValues(operation).Inc()
		return model.Notification{}, fmt.Errorf("%s: %w", operation, err)
	}
	s.metrics.Mutations.WithLabelValues(operation).Inc()
	s.statsCache.Delete(statsCacheKey)
	return n, nil
}

func (s *service) observe(operation string) func() {
	start := time.Now()
	return func() {
		s.metrics.QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
