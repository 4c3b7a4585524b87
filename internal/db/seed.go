package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

// DemoCampaigns returns the sample history shown on a fresh dashboard,
// dated relative to now.
func DemoCampaigns(now time.Time) []domain.Campaign {
	day := 24 * time.Hour
	base := now.UnixMilli()
	return []domain.Campaign{
		{
			ID:       base - 1000000,
			Name:     "Summer Sale 2024",
			Content:  "Exclusive summer deals with up to 50% off on selected items. Limited time offer!",
			Metadata: map[string]string{"targetAudience": "Young Families", "campaignType": "Seasonal Promotion"},
			Created:  now.Add(-7 * day).UTC(),
			Status:   domain.StatusActive,
			Metrics:  domain.CampaignMetrics{Impressions: 145230, Clicks: 10456, CTR: "7.20", Engagement: 85, Reach: 195000},
		},
		{
			ID:       base - 2000000,
			Name:     "Holiday Shopping Guide",
			Content:  "Your complete guide to stress-free holiday shopping with Clubcard benefits.",
			Metadata: map[string]string{"targetAudience": "Premium Shoppers", "campaignType": "Brand Awareness"},
			Created:  now.Add(-14 * day).UTC(),
			Status:   domain.StatusActive,
			Metrics:  domain.CampaignMetrics{Impressions: 98560, Clicks: 6234, CTR: "6.32", Engagement: 78, Reach: 142000},
		},
		{
			ID:       base - 3000000,
			Name:     "Flash Weekend Sale",
			Content:  "48-hour flash sale on electronics and home goods. Shop now before it ends!",
			Metadata: map[string]string{"targetAudience": "Budget Conscious", "campaignType": "Flash Sale"},
			Created:  now.Add(-21 * day).UTC(),
			Status:   domain.StatusCompleted,
			Metrics:  domain.CampaignMetrics{Impressions: 203450, Clicks: 15678, CTR: "7.71", Engagement: 92, Reach: 275000},
		},
	}
}

// Seed writes the demo campaigns when the store holds none. It returns the
// number of campaigns written.
func Seed(ctx context.Context, kv port.KVStore, now time.Time) (int, error) {
	raw, found, err := kv.Get(ctx, port.KeyCampaigns)
	if err != nil {
		return 0, fmt.Errorf("read campaigns: %w", err)
	}
	if found {
		var existing []json.RawMessage
		if err = json.Unmarshal([]byte(strings.TrimSpace(raw)), &existing); err == nil && len(existing) > 0 {
			return 0, nil
		}
	}

	demo := DemoCampaigns(now)
	out, err := json.Marshal(demo)
	if err != nil {
		return 0, fmt.Errorf("encode demo campaigns: %w", err)
	}
	if err = kv.Set(ctx, port.KeyCampaigns, string(out)); err != nil {
		return 0, fmt.Errorf("write demo campaigns: %w", err)
	}
	return len(demo), nil
}
