package usecase

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

// Notifier keeps the notification panel feed, newest first.
type Notifier struct {
	clock port.Clock

	mu    sync.RWMutex
	items []domain.Notification
}

// NewNotifier returns a feed seeded with the welcome notifications.
func NewNotifier(clock port.Clock) *Notifier {
	now := clock.Now().UTC()
	seed := []struct {
		title, message, typ string
		age                 time.Duration
		unread              bool
	}{
		{"🎉 Campaign Performance Alert", "Your Summer Sale campaign exceeded 10K impressions and achieved 7.2% CTR!", "success", 5 * time.Minute, true},
		{"🔥 New Trend Detected", "Black Friday prep is trending up 234%. Consider creating urgency-focused campaigns.", "info", time.Hour, true},
		{"✅ Compliance Check Complete", "All active campaigns passed validation checks. No issues found.", "success", 3 * time.Hour, false},
		{"📊 Weekly Report Ready", "Your weekly performance report is available for download.", "info", 24 * time.Hour, false},
	}
	n := &Notifier{clock: clock}
	for _, s := range seed {
		n.items = append(n.items, domain.Notification{
			ID:      uuid.NewString(),
			Title:   s.title,
			Message: s.message,
			Type:    s.typ,
			Unread:  s.unread,
			At:      now.Add(-s.age),
		})
	}
	return n
}

// Add prepends an unread notification.
func (n *Notifier) Add(title, message, typ string) domain.Notification {
	item := domain.Notification{
		ID:      uuid.NewString(),
		Title:   title,
		Message: message,
		Type:    typ,
		Unread:  true,
		At:      n.clock.Now().UTC(),
	}
	n.mu.Lock()
	n.items = slices.Insert(n.items, 0, item)
	n.mu.Unlock()
	return item
}

// List returns a copy of the feed.
func (n *Notifier) List() []domain.Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.items)
}

// MarkRead clears the unread flag of id. It reports whether id was found.
func (n *Notifier) MarkRead(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.items {
		if n.items[i].ID == id {
			n.items[i].Unread = false
			return true
		}
	}
	return false
}

// UnreadCount returns the badge number.
func (n *Notifier) UnreadCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	count := 0
	for _, item := range n.items {
		if item.Unread {
			count++
		}
	}
	return count
}
