package usecase

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

//go:embed data/trends.yaml
var trendsYAML []byte

// Trends serves the trend cards. It implements port.TrendCatalog.
type Trends struct {
	cards     []domain.Trend
	templates *copyTemplates
	notifier  *Notifier
	clock     port.Clock
}

// NewTrends loads the embedded catalog.
func NewTrends(notifier *Notifier, clock port.Clock) (*Trends, error) {
	var cards []domain.Trend
	if err := yaml.Unmarshal(trendsYAML, &cards); err != nil {
		return nil, fmt.Errorf("parse trends: %w", err)
	}
	return &Trends{cards: cards, templates: newCopyTemplates(), notifier: notifier, clock: clock}, nil
}

// Trends returns the cards with the month placeholders filled from the clock.
func (t *Trends) Trends() []domain.Trend {
	bindings := map[string]any{"month": t.clock.Now().Month().String()}
	out := make([]domain.Trend, 0, len(t.cards))
	for _, c := range t.cards {
		if title, err := t.templates.render(c.Title, bindings); err == nil {
			c.Title = title
		}
		if desc, err := t.templates.render(c.Description, bindings); err == nil {
			c.Description = desc
		}
		out = append(out, c)
	}
	return out
}

// ApplyTrend appends the trend insight line to a non-empty brief and
// returns the result. An empty brief is returned unchanged.
func (t *Trends) ApplyTrend(title, brief string) string {
	if t.notifier != nil {
		t.notifier.Add("Trend Applied", fmt.Sprintf("%q insights added to your campaign strategy", title), "success")
	}
	if strings.TrimSpace(brief) == "" {
		return brief
	}
	return brief + "\n\nTrend Insight: " + title
}
