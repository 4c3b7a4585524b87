package domain

import "time"

// Metrics is the process-wide dashboard snapshot. CTR is derived from
// clicks and impressions and rounded to two decimals.
type Metrics struct {
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	CTR             float64 `json:"ctr"`
	ActiveCampaigns int     `json:"activeCampaigns"`
}

// SeriesPoint is one hourly sample.
type SeriesPoint struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// HourlySeries groups the three rolling signals.
type HourlySeries struct {
	Impressions []SeriesPoint `json:"hourlyImpressions"`
	Clicks      []SeriesPoint `json:"hourlyClicks"`
	Engagement  []SeriesPoint `json:"hourlyEngagement"`
}

// Activity is an entry of the recent-activity feed.
type Activity struct {
	ID          string    `json:"id"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
}

// TickEvent is the data transition produced by one simulator tick.
type TickEvent struct {
	Before   Metrics   `json:"before"`
	After    Metrics   `json:"after"`
	Activity *Activity `json:"activity,omitempty"`
	At       time.Time `json:"at"`
}
