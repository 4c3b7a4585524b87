package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"creativesync/internal/adapter/memory"
	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
	"creativesync/internal/core/port/mocks"
)

type activeRecorder struct {
	mu sync.Mutex
	n  int
}

func (r *activeRecorder) SetActiveCampaigns(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n = n
}

func (r *activeRecorder) get() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

var (
	accept  = port.ConfirmFunc(func(context.Context, string) bool { return true })
	decline = port.ConfirmFunc(func(context.Context, string) bool { return false })
)

type storeFixture struct {
	store  *CampaignStore
	kv     port.KVStore
	drafts *DraftSlot
	active *activeRecorder
	clock  *stepClock
}

func newStoreFixture(t *testing.T, kv port.KVStore) storeFixture {
	t.Helper()
	if kv == nil {
		kv = memory.NewKVStore()
	}
	clock := newStepClock()
	drafts := &DraftSlot{}
	active := &activeRecorder{n: -1}
	store := NewCampaignStore(kv, drafts, active, NewNotifier(clock), NewRandom(5), clock, testLogger(t))
	return storeFixture{store: store, kv: kv, drafts: drafts, active: active, clock: clock}
}

func (f storeFixture) draft(title string) {
	f.drafts.Set(domain.Draft{
		Title:    title,
		Content:  "copy for " + title,
		Metadata: map[string]string{"tone": "Friendly"},
		Created:  f.clock.Now().UTC(),
	})
}

func (f storeFixture) persisted(t *testing.T) []domain.Campaign {
	t.Helper()
	raw, found, err := f.kv.Get(context.Background(), port.KeyCampaigns)
	require.NoError(t, err)
	require.True(t, found)
	var list []domain.Campaign
	require.NoError(t, json.Unmarshal([]byte(raw), &list))
	return list
}

func TestSaveRequiresDraft(t *testing.T) {
	f := newStoreFixture(t, nil)
	_, err := f.store.Save(context.Background())
	assert.ErrorIs(t, err, port.ErrNoActiveDraft)
	assert.Zero(t, f.store.Count())
}

func TestSavePrependsAndPersists(t *testing.T) {
	f := newStoreFixture(t, nil)
	ctx := context.Background()

	f.draft("First")
	first, err := f.store.Save(ctx)
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	f.draft("Second")
	second, err := f.store.Save(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusActive, first.Status)
	assert.Greater(t, second.ID, first.ID)
	assert.True(t, first.Metrics.Impressions >= 100000 && first.Metrics.Impressions < 150000)
	assert.True(t, first.Metrics.Clicks >= 5000 && first.Metrics.Clicks < 8000)
	assert.True(t, first.Metrics.Engagement >= 70 && first.Metrics.Engagement < 90)
	assert.True(t, first.Metrics.Reach >= 150000 && first.Metrics.Reach < 250000)

	list := f.store.Campaigns()
	require.Len(t, list, 2)
	assert.Equal(t, "Second", list[0].Name)
	assert.Equal(t, "First", list[1].Name)
	assert.Equal(t, list, f.persisted(t))
	assert.Equal(t, 2, f.active.get())
}

func TestSaveSameMillisecondGetsDistinctIDs(t *testing.T) {
	f := newStoreFixture(t, nil)
	f.draft("Same")
	a, err := f.store.Save(context.Background())
	require.NoError(t, err)
	b, err := f.store.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a.ID+1, b.ID)
}

func TestSaveKeepsRecordWhenPersistenceFails(t *testing.T) {
	kv := mocks.NewMockKVStore(t)
	boom := errors.New("quota exceeded")
	kv.EXPECT().Set(mock.Anything, port.KeyCampaigns, mock.Anything).Return(boom)
	f := newStoreFixture(t, kv)

	f.draft("Unlucky")
	c, err := f.store.Save(context.Background())
	require.NotNil(t, c)
	assert.ErrorIs(t, err, port.ErrPersistenceWrite)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, f.store.Count())
}

func TestDuplicate(t *testing.T) {
	f := newStoreFixture(t, nil)
	ctx := context.Background()
	f.draft("Original")
	orig, err := f.store.Save(ctx)
	require.NoError(t, err)

	f.clock.Advance(time.Minute)
	dup, err := f.store.Duplicate(ctx, orig.ID)
	require.NoError(t, err)
	require.NotNil(t, dup)

	assert.NotEqual(t, orig.ID, dup.ID)
	assert.Equal(t, "Original (Copy)", dup.Name)
	assert.Equal(t, int64(0), dup.Metrics.Impressions)
	assert.Equal(t, int64(0), dup.Metrics.Clicks)
	assert.Equal(t, "0.00", dup.Metrics.CTR)
	assert.Equal(t, orig.Metrics.Reach, dup.Metrics.Reach)
	assert.Equal(t, orig.Metrics.Engagement, dup.Metrics.Engagement)
	assert.Equal(t, f.clock.Now(), dup.Created)

	list := f.store.Campaigns()
	require.Len(t, list, 2)
	assert.Equal(t, dup.ID, list[0].ID)
	assert.Equal(t, 2, f.active.get())

	// Copies do not share metadata with the original.
	list[0].Metadata["tone"] = "changed"
	assert.Equal(t, "Friendly", f.store.Campaigns()[1].Metadata["tone"])
}

func TestDuplicateUnknownIsNoop(t *testing.T) {
	f := newStoreFixture(t, nil)
	dup, err := f.store.Duplicate(context.Background(), 42)
	assert.NoError(t, err)
	assert.Nil(t, dup)
	_, found, _ := f.kv.Get(context.Background(), port.KeyCampaigns)
	assert.False(t, found)
}

func TestDeleteIsGated(t *testing.T) {
	f := newStoreFixture(t, nil)
	ctx := context.Background()
	f.draft("Doomed")
	c, err := f.store.Save(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, f.store.Delete(ctx, c.ID, decline), port.ErrNotConfirmed)
	assert.ErrorIs(t, f.store.Delete(ctx, c.ID, nil), port.ErrNotConfirmed)
	assert.Equal(t, 1, f.store.Count())

	require.NoError(t, f.store.Delete(ctx, c.ID, accept))
	assert.Zero(t, f.store.Count())
	assert.Empty(t, f.persisted(t))
	assert.Zero(t, f.active.get())
}

func TestListFilter(t *testing.T) {
	f := newStoreFixture(t, nil)
	ctx := context.Background()
	for _, name := range []string{"Summer Sale", "Winter Deals", "summer picnic"} {
		f.draft(name)
		_, err := f.store.Save(ctx)
		require.NoError(t, err)
	}

	assert.Len(t, f.store.List(""), 3)
	summer := f.store.List("SUMMER")
	require.Len(t, summer, 2)
	assert.Equal(t, "summer picnic", summer[0].Name)
	assert.Len(t, f.store.List("nov 14, 2024"), 3)
	assert.Len(t, f.store.List("active"), 3)
	assert.Empty(t, f.store.List("autumn"))
}

func TestRenderCampaignShowsNAForMissingReach(t *testing.T) {
	c := domain.Campaign{
		Name:    "Legacy",
		Status:  domain.StatusCompleted,
		Created: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
		Metrics: domain.CampaignMetrics{Impressions: 1234567, Clicks: 8910, CTR: "0.72"},
	}
	assert.Equal(t, "Legacy ● Completed • Created: Mar 3, 2024 1,234,567 8,910 0.72% N/A", renderCampaign(c))
}

func TestViewLoadsDraft(t *testing.T) {
	f := newStoreFixture(t, nil)
	ctx := context.Background()
	f.draft("Viewable")
	c, err := f.store.Save(ctx)
	require.NoError(t, err)
	f.draft("Other")

	draft, err := f.store.View(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, "Viewable", draft.Title)
	assert.Equal(t, c.Metrics.CTR, draft.Prediction.CTR)

	current, _ := f.drafts.Get()
	assert.Equal(t, "Viewable", current.Title)

	missing, err := f.store.View(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLoadRestoresPersistedList(t *testing.T) {
	kv := memory.NewKVStore()
	f := newStoreFixture(t, kv)
	ctx := context.Background()
	f.draft("Kept")
	saved, err := f.store.Save(ctx)
	require.NoError(t, err)

	restored := newStoreFixture(t, kv)
	require.NoError(t, restored.store.Load(ctx))
	list := restored.store.Campaigns()
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)

	// ids keep increasing after a restart even if the clock went back.
	restored.clock.Advance(-time.Hour)
	restored.draft("Next")
	next, err := restored.store.Save(ctx)
	require.NoError(t, err)
	assert.Greater(t, next.ID, saved.ID)
}

func TestLoadRejectsCorruptList(t *testing.T) {
	kv := memory.NewKVStore()
	require.NoError(t, kv.Set(context.Background(), port.KeyCampaigns, "{not json"))
	f := newStoreFixture(t, kv)
	assert.Error(t, f.store.Load(context.Background()))
}

func TestConcurrentSaves(t *testing.T) {
	f := newStoreFixture(t, nil)
	f.draft("Busy")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.store.Save(context.Background())
		}()
	}
	wg.Wait()

	list := f.store.Campaigns()
	require.Len(t, list, 20)
	seen := map[int64]bool{}
	for _, c := range list {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
	assert.Len(t, f.persisted(t), 20)
}
