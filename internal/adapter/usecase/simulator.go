package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

const (
	seriesLength   = 24
	displayWindow  = 7
	activityLimit  = 10
	activityChance = 0.4

	// DefaultTickInterval is the reference refresh period of the dashboard.
	DefaultTickInterval = 3 * time.Second
)

// Seed values of the dashboard counters.
var seedMetrics = domain.Metrics{
	Impressions:     245678,
	Clicks:          18234,
	CTR:             7.42,
	ActiveCampaigns: 12,
}

type activityTemplate struct {
	icon, color, title, description string
}

var tickActivities = []activityTemplate{
	{"fas fa-eye", "#3b82f6", "New Impressions", "+500 impressions in the last 3 seconds"},
	{"fas fa-mouse-pointer", "#10b981", "Clicks Recorded", "+25 clicks from your campaigns"},
	{"fas fa-fire", "#ef4444", "Trending Up", "Your campaign is gaining momentum"},
}

// Simulator owns the synthetic dashboard metrics and advances them on a
// fixed period. It implements port.MetricsReader.
type Simulator struct {
	rnd      *Random
	clock    port.Clock
	interval time.Duration
	logger   *zap.Logger

	mu        sync.RWMutex
	metrics   domain.Metrics
	series    domain.HourlySeries
	activity  []domain.Activity
	observers []func(domain.TickEvent)
}

// NewSimulator creates a simulator seeded with the reference counters, 24
// hours of samples and the initial activity feed. A non-positive interval
// selects DefaultTickInterval.
func NewSimulator(rnd *Random, clock port.Clock, interval time.Duration, logger *zap.Logger) *Simulator {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	s := &Simulator{
		rnd:      rnd,
		clock:    clock,
		interval: interval,
		logger:   logger,
		metrics:  seedMetrics,
	}
	now := clock.Now()
	for i := seriesLength - 1; i >= 0; i-- {
		label := hourLabel(now.Add(-time.Duration(i) * time.Hour))
		s.series.Impressions = append(s.series.Impressions, domain.SeriesPoint{Time: label, Value: float64(rnd.FloorUniform(8000, 13000))})
		s.series.Clicks = append(s.series.Clicks, domain.SeriesPoint{Time: label, Value: float64(rnd.FloorUniform(500, 900))})
		s.series.Engagement = append(s.series.Engagement, domain.SeriesPoint{Time: label, Value: round2(rnd.Uniform(5, 8))})
	}
	s.activity = seedActivity(now.UTC())
	return s
}

// Subscribe registers fn to receive every tick transition.
func (s *Simulator) Subscribe(fn func(domain.TickEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Run ticks every interval until ctx is done.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.logger.Info("metrics simulator started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("metrics simulator stopped")
			return nil
		case <-ticker.C:
			s.Tick()
		}
	}
}

// Tick advances the counters and series by one step and returns the
// transition. Observers are notified after the state is updated.
func (s *Simulator) Tick() domain.TickEvent {
	now := s.clock.Now()
	label := hourLabel(now)

	s.mu.Lock()
	ev := domain.TickEvent{Before: s.metrics, At: now.UTC()}

	s.metrics.Impressions += s.rnd.FloorUniform(200, 1000)
	s.metrics.Clicks += s.rnd.FloorUniform(10, 60)
	s.metrics.CTR = round2(float64(s.metrics.Clicks) / float64(s.metrics.Impressions) * 100)

	s.series.Impressions = slide(s.series.Impressions, domain.SeriesPoint{Time: label, Value: float64(s.rnd.FloorUniform(8000, 13000))})
	s.series.Clicks = slide(s.series.Clicks, domain.SeriesPoint{Time: label, Value: float64(s.rnd.FloorUniform(500, 900))})
	s.series.Engagement = slide(s.series.Engagement, domain.SeriesPoint{Time: label, Value: round2(s.rnd.Uniform(5, 8))})

	if s.rnd.Float64() < activityChance {
		tpl := tickActivities[s.rnd.IntN(len(tickActivities))]
		a := domain.Activity{
			ID:          uuid.NewString(),
			Icon:        tpl.icon,
			Color:       tpl.color,
			Title:       tpl.title,
			Description: tpl.description,
			At:          now.UTC(),
		}
		s.activity = slices.Insert(s.activity, 0, a)
		if len(s.activity) > activityLimit {
			s.activity = s.activity[:activityLimit]
		}
		ev.Activity = &a
	}
	ev.After = s.metrics
	observers := slices.Clone(s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(ev)
	}
	return ev
}

// SetActiveCampaigns stores the derived active campaign count.
func (s *Simulator) SetActiveCampaigns(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics.ActiveCampaigns = n
}

// Snapshot returns the current counters.
func (s *Simulator) Snapshot() domain.Metrics {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metrics
}

// Series returns a copy of the full 24-point series.
func (s *Simulator) Series() domain.HourlySeries {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.HourlySeries{
		Impressions: slices.Clone(s.series.Impressions),
		Clicks:      slices.Clone(s.series.Clicks),
		Engagement:  slices.Clone(s.series.Engagement),
	}
}

// Window returns the most recent points shown on the performance chart.
func (s *Simulator) Window() domain.HourlySeries {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.HourlySeries{
		Impressions: slices.Clone(tail(s.series.Impressions, displayWindow)),
		Clicks:      slices.Clone(tail(s.series.Clicks, displayWindow)),
		Engagement:  slices.Clone(tail(s.series.Engagement, displayWindow)),
	}
}

// Activity returns the recent activity feed, newest first.
func (s *Simulator) Activity() []domain.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.activity)
}

// slide drops the oldest point and appends p. The result has the same length.
func slide(points []domain.SeriesPoint, p domain.SeriesPoint) []domain.SeriesPoint {
	out := make([]domain.SeriesPoint, 0, len(points))
	if len(points) > 0 {
		out = append(out, points[1:]...)
	}
	return append(out, p)
}

func tail(points []domain.SeriesPoint, n int) []domain.SeriesPoint {
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}

func hourLabel(t time.Time) string {
	return fmt.Sprintf("%d:00", t.Hour())
}

func seedActivity(now time.Time) []domain.Activity {
	seed := []struct {
		activityTemplate
		age time.Duration
	}{
		{activityTemplate{"fas fa-rocket", "#3b82f6", "Campaign Launched", "Summer Sale 2024 is now live"}, 2 * time.Minute},
		{activityTemplate{"fas fa-chart-line", "#10b981", "Performance Milestone", "CTR increased by 15%"}, 15 * time.Minute},
		{activityTemplate{"fas fa-bell", "#f59e0b", "Trend Alert", "New cultural moment detected"}, time.Hour},
		{activityTemplate{"fas fa-check-circle", "#8b5cf6", "Compliance Check", "All campaigns passed validation"}, 2 * time.Hour},
		{activityTemplate{"fas fa-users", "#ef4444", "Audience Insight", "Premium shoppers engagement up 23%"}, 3 * time.Hour},
	}
	out := make([]domain.Activity, 0, len(seed))
	for _, a := range seed {
		out = append(out, domain.Activity{
			ID:          uuid.NewString(),
			Icon:        a.icon,
			Color:       a.color,
			Title:       a.title,
			Description: a.description,
			At:          now.Add(-a.age),
		})
	}
	return out
}
