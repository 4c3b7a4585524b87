package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

const deletePrompt = "Are you sure you want to delete this campaign? This action cannot be undone."

// ActiveCounter receives the derived number of active campaigns.
type ActiveCounter interface {
	SetActiveCampaigns(n int)
}

// CampaignStore provides business logic for saved campaigns. It owns the
// ordered campaign list (newest first) and mirrors the whole list into the
// key-value store after every mutation. It implements port.CampaignStore.
type CampaignStore struct {
	kv       port.KVStore
	drafts   *DraftSlot
	active   ActiveCounter
	notifier *Notifier
	rnd      *Random
	clock    port.Clock
	logger   *zap.Logger

	mu        sync.RWMutex
	campaigns []domain.Campaign
	lastID    int64
}

// NewCampaignStore creates an empty store. Call Load to restore the
// persisted campaigns.
func NewCampaignStore(kv port.KVStore, drafts *DraftSlot, active ActiveCounter, notifier *Notifier, rnd *Random, clock port.Clock, logger *zap.Logger) *CampaignStore {
	return &CampaignStore{
		kv:        kv,
		drafts:    drafts,
		active:    active,
		notifier:  notifier,
		rnd:       rnd,
		clock:     clock,
		logger:    logger,
		campaigns: []domain.Campaign{},
	}
}

// Load restores the campaign list from the key-value store. A missing key
// leaves the store empty.
func (s *CampaignStore) Load(ctx context.Context) error {
	raw, found, err := s.kv.Get(ctx, port.KeyCampaigns)
	if err != nil {
		return fmt.Errorf("load campaigns: %w", err)
	}
	if !found || strings.TrimSpace(raw) == "" {
		return nil
	}
	var list []domain.Campaign
	if err = json.Unmarshal([]byte(raw), &list); err != nil {
		return fmt.Errorf("decode campaigns: %w", err)
	}
	if list == nil {
		list = []domain.Campaign{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = list
	for _, c := range list {
		s.lastID = max(s.lastID, c.ID)
	}
	return nil
}

// Save turns the current draft into an active campaign with synthetic
// metrics. It fails with port.ErrNoActiveDraft when nothing was generated.
// A rejected write still returns the saved campaign together with an error
// wrapping port.ErrPersistenceWrite.
func (s *CampaignStore) Save(ctx context.Context) (*domain.Campaign, error) {
	draft, ok := s.drafts.Get()
	if !ok {
		return nil, port.ErrNoActiveDraft
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := domain.Campaign{
		ID:       s.nextID(),
		Name:     draft.Title,
		Content:  draft.Content,
		Metadata: maps.Clone(draft.Metadata),
		Created:  draft.Created,
		Status:   domain.StatusActive,
		Metrics: domain.CampaignMetrics{
			Impressions: s.rnd.FloorUniform(100000, 150000),
			Clicks:      s.rnd.FloorUniform(5000, 8000),
			CTR:         format2(s.rnd.Uniform(5, 8)),
			Engagement:  int(s.rnd.FloorUniform(70, 90)),
			Reach:       s.rnd.FloorUniform(150000, 250000),
		},
	}
	s.campaigns = slices.Insert(s.campaigns, 0, c)
	err := s.persist(ctx)
	s.publishActive()
	s.notifier.Add("Campaign Saved", fmt.Sprintf("%s is now active", c.Name), "success")
	return &c, err
}

// Duplicate copies campaign id under a new id with reset counters. Reach
// and engagement are kept. Unknown ids are a no-op returning nil.
func (s *CampaignStore) Duplicate(ctx context.Context, id int64) (*domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, nil
	}
	dup := s.campaigns[idx].Clone()
	dup.ID = s.nextID()
	dup.Name += " (Copy)"
	dup.Created = s.clock.Now().UTC()
	dup.Metrics.Impressions = 0
	dup.Metrics.Clicks = 0
	dup.Metrics.CTR = "0.00"

	s.campaigns = slices.Insert(s.campaigns, 0, dup)
	err := s.persist(ctx)
	s.publishActive()
	return &dup, err
}

// Delete removes campaign id after confirm accepts. A declined or missing
// confirmation returns port.ErrNotConfirmed and leaves the store untouched.
func (s *CampaignStore) Delete(ctx context.Context, id int64, confirm port.Confirmer) error {
	if confirm == nil || !confirm.Confirm(ctx, deletePrompt) {
		return port.ErrNotConfirmed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = slices.DeleteFunc(s.campaigns, func(c domain.Campaign) bool { return c.ID == id })
	err := s.persist(ctx)
	s.publishActive()
	return err
}

// List returns campaigns whose rendered text contains filter, ignoring
// case. An empty filter returns every campaign in store order.
func (s *CampaignStore) List(filter string) []domain.Campaign {
	needle := strings.ToLower(strings.TrimSpace(filter))
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		if needle == "" || strings.Contains(strings.ToLower(renderCampaign(c)), needle) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// View loads campaign id into the current draft.
func (s *CampaignStore) View(_ context.Context, id int64) (*domain.Draft, error) {
	s.mu.RLock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.RUnlock()
		return nil, nil
	}
	c := s.campaigns[idx].Clone()
	s.mu.RUnlock()

	draft := domain.Draft{
		Title:    c.Name,
		Content:  c.Content,
		Metadata: c.Metadata,
		Created:  c.Created,
		Prediction: &domain.Prediction{
			CTR:        c.Metrics.CTR,
			Reach:      c.Metrics.Reach,
			Engagement: c.Metrics.Engagement,
			Compliance: 100,
		},
	}
	s.drafts.Set(draft)
	return &draft, nil
}

// Campaigns returns a copy of the whole list.
func (s *CampaignStore) Campaigns() []domain.Campaign {
	return s.List("")
}

// Count returns the number of saved campaigns.
func (s *CampaignStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.campaigns)
}

// ActiveCount returns the number of campaigns with status Active.
func (s *CampaignStore) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeCount()
}

func (s *CampaignStore) activeCount() int {
	n := 0
	for _, c := range s.campaigns {
		if c.IsActive() {
			n++
		}
	}
	return n
}

func (s *CampaignStore) publishActive() {
	if s.active != nil {
		s.active.SetActiveCampaigns(s.activeCount())
	}
}

// persist writes the full list. Callers hold s.mu.
func (s *CampaignStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.campaigns)
	if err != nil {
		return fmt.Errorf("encode campaigns: %w", err)
	}
	if err = s.kv.Set(ctx, port.KeyCampaigns, string(raw)); err != nil {
		s.logger.Warn("campaign list not persisted", zap.Int("campaigns", len(s.campaigns)), zap.Error(err))
		return fmt.Errorf("%w: %w", port.ErrPersistenceWrite, err)
	}
	return nil
}

// nextID returns a clock-derived id strictly greater than any issued so far.
func (s *CampaignStore) nextID() int64 {
	id := s.clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *CampaignStore) indexOf(id int64) int {
	return slices.IndexFunc(s.campaigns, func(c domain.Campaign) bool { return c.ID == id })
}

// renderCampaign is the text a history row shows; filtering matches on it.
func renderCampaign(c domain.Campaign) string {
	reach := "N/A"
	if c.Metrics.Reach > 0 {
		reach = humanize.Comma(c.Metrics.Reach)
	}
	return fmt.Sprintf("%s ● %s • Created: %s %s %s %s%% %s",
		c.Name,
		c.Status,
		c.Created.Format("Jan 2, 2006"),
		humanize.Comma(c.Metrics.Impressions),
		humanize.Comma(c.Metrics.Clicks),
		c.Metrics.CTR,
		reach,
	)
}
