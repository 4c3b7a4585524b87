package db

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creativesync/internal/adapter/memory"
	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

func TestSeedEmptyStore(t *testing.T) {
	kv := memory.NewKVStore()
	now := time.Date(2024, time.November, 14, 12, 0, 0, 0, time.UTC)

	n, err := Seed(context.Background(), kv, now)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	raw, found, err := kv.Get(context.Background(), port.KeyCampaigns)
	require.NoError(t, err)
	require.True(t, found)
	var list []domain.Campaign
	require.NoError(t, json.Unmarshal([]byte(raw), &list))
	require.Len(t, list, 3)
	assert.Equal(t, "Summer Sale 2024", list[0].Name)
	assert.Equal(t, now.Add(-7*24*time.Hour), list[0].Created)
	assert.Equal(t, domain.StatusCompleted, list[2].Status)
}

func TestSeedKeepsExistingCampaigns(t *testing.T) {
	kv := memory.NewKVStore()
	require.NoError(t, kv.Set(context.Background(), port.KeyCampaigns, `[{"id":1,"name":"Mine"}]`))

	n, err := Seed(context.Background(), kv, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	raw, _, _ := kv.Get(context.Background(), port.KeyCampaigns)
	assert.Equal(t, `[{"id":1,"name":"Mine"}]`, raw)
}

func TestSeedReplacesEmptyList(t *testing.T) {
	kv := memory.NewKVStore()
	require.NoError(t, kv.Set(context.Background(), port.KeyCampaigns, `[]`))

	n, err := Seed(context.Background(), kv, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
