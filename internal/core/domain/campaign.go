package domain

import (
	"maps"
	"time"
)

// CampaignStatus is the lifecycle label of a saved campaign. It is set once
// at creation and only read afterwards.
type CampaignStatus string

const (
	StatusActive    CampaignStatus = "Active"
	StatusCompleted CampaignStatus = "Completed"
)

// Campaign represents a saved advertising campaign. The JSON layout is the
// one persisted under the "campaigns" key, so field names must stay stable.
type Campaign struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
	Created  time.Time         `json:"created"`
	Status   CampaignStatus    `json:"status"`
	Metrics  CampaignMetrics   `json:"metrics"`
}

// CampaignMetrics holds the synthetic performance numbers assigned when a
// campaign is saved. CTR is kept as a two-decimal string.
type CampaignMetrics struct {
	Impressions int64  `json:"impressions"`
	Clicks      int64  `json:"clicks"`
	CTR         string `json:"ctr"`
	Engagement  int    `json:"engagement,omitempty"`
	Reach       int64  `json:"reach,omitempty"`
}

// Clone returns a deep copy of the campaign.
func (c Campaign) Clone() Campaign {
	out := c
	out.Metadata = maps.Clone(c.Metadata)
	return out
}

// IsActive reports whether the campaign counts towards the active total.
func (c Campaign) IsActive() bool {
	return c.Status == StatusActive
}
