package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

// NoCampaignsCSV is the CSV export of an empty store.
const NoCampaignsCSV = "No campaigns to export"

var csvHeader = []string{
	"Campaign Name",
	"Created Date",
	"Status",
	"Impressions",
	"Clicks",
	"CTR (%)",
	"Engagement",
	"Reach",
}

type campaignLister interface {
	Campaigns() []domain.Campaign
}

// Exporter renders analytics snapshots and the current draft. It
// implements port.Exporter.
type Exporter struct {
	campaigns campaignLister
	metrics   metricsSnapshotter
	drafts    *DraftSlot
	clock     port.Clock
}

// NewExporter creates an exporter.
func NewExporter(campaigns campaignLister, metrics metricsSnapshotter, drafts *DraftSlot, clock port.Clock) *Exporter {
	return &Exporter{campaigns: campaigns, metrics: metrics, drafts: drafts, clock: clock}
}

type exportSummary struct {
	TotalCampaigns   int     `json:"totalCampaigns"`
	ActiveCampaigns  int     `json:"activeCampaigns"`
	TotalImpressions int64   `json:"totalImpressions"`
	TotalClicks      int64   `json:"totalClicks"`
	AverageCTR       float64 `json:"averageCTR"`
}

type analyticsExport struct {
	Campaigns []domain.Campaign `json:"campaigns"`
	Metrics   domain.Metrics    `json:"metrics"`
	Summary   exportSummary     `json:"summary"`
	Exported  time.Time         `json:"exported"`
}

// ExportJSON returns the pretty-printed analytics snapshot.
func (e *Exporter) ExportJSON(_ context.Context) ([]byte, error) {
	list := e.campaigns.Campaigns()
	m := e.metrics.Snapshot()
	doc := analyticsExport{
		Campaigns: list,
		Metrics:   m,
		Summary: exportSummary{
			TotalCampaigns: len(list),
			AverageCTR:     m.CTR,
		},
		Exported: e.clock.Now().UTC(),
	}
	for _, c := range list {
		if c.IsActive() {
			doc.Summary.ActiveCampaigns++
		}
		doc.Summary.TotalImpressions += c.Metrics.Impressions
		doc.Summary.TotalClicks += c.Metrics.Clicks
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode analytics export: %w", err)
	}
	return out, nil
}

// ExportCSV returns one row per campaign under the fixed 8-column header,
// or NoCampaignsCSV when the store is empty.
func (e *Exporter) ExportCSV(_ context.Context) string {
	list := e.campaigns.Campaigns()
	if len(list) == 0 {
		return NoCampaignsCSV
	}
	lines := make([]string, 0, len(list)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, c := range list {
		lines = append(lines, strings.Join([]string{
			`"` + strings.ReplaceAll(c.Name, `"`, `""`) + `"`,
			c.Created.Format("1/2/2006"),
			string(c.Status),
			strconv.FormatInt(c.Metrics.Impressions, 10),
			strconv.FormatInt(c.Metrics.Clicks, 10),
			c.Metrics.CTR,
			orNA(int64(c.Metrics.Engagement)),
			orNA(c.Metrics.Reach),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

type draftPredictions struct {
	CTR        string `json:"ctr"`
	Reach      string `json:"reach"`
	Engagement string `json:"engagement"`
	Compliance string `json:"compliance"`
}

type draftExport struct {
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	Metadata    map[string]string `json:"metadata"`
	Predictions *draftPredictions `json:"predictions,omitempty"`
	Exported    time.Time         `json:"exported"`
}

// ExportDraft returns the current draft with its predictions as the panel
// displays them. It fails with port.ErrNoActiveDraft when there is none.
func (e *Exporter) ExportDraft(_ context.Context) (*port.DraftExport, error) {
	draft, ok := e.drafts.Get()
	if !ok {
		return nil, port.ErrNoActiveDraft
	}
	now := e.clock.Now()
	doc := draftExport{
		Title:    draft.Title,
		Content:  draft.Content,
		Metadata: maps.Clone(draft.Metadata),
		Exported: now.UTC(),
	}
	if p := draft.Prediction; p != nil {
		doc.Predictions = &draftPredictions{
			CTR:        p.CTR + "%",
			Reach:      humanize.Comma(p.Reach),
			Engagement: fmt.Sprintf("%d/100", p.Engagement),
			Compliance: fmt.Sprintf("%d/100", p.Compliance),
		}
	}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode draft export: %w", err)
	}
	return &port.DraftExport{
		FileName: fmt.Sprintf("%s-%d.json", strings.Join(strings.Fields(draft.Title), "-"), now.UnixMilli()),
		Body:     body,
	}, nil
}

func orNA(v int64) string {
	if v == 0 {
		return "N/A"
	}
	return strconv.FormatInt(v, 10)
}
