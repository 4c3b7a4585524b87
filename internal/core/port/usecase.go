package port

import (
	"context"

	"creativesync/internal/core/domain"
)

// CampaignGenerator drafts campaign copy through the text-generation
// collaborator. This interface, like the others in this file, is an inbound
// port used by the HTTP layer. Mock implementations can be generated from
// it for testing.
type CampaignGenerator interface {
	// Generate validates the request, drafts the copy and stores the result
	// as the current draft. Collaborator failures are recovered with demo
	// content and reported through GenerateResult.Fallback.
	Generate(ctx context.Context, req domain.GenerateRequest) (*GenerateResult, error)
}

// VariantGenerator produces three tone-styled drafts for comparison.
type VariantGenerator interface {
	GenerateVariants(ctx context.Context, brief, name string) (*domain.VariantSet, error)
	// SelectVariant promotes variant n (1-based) of the last run to the
	// current draft.
	SelectVariant(ctx context.Context, n int) (*domain.Draft, error)
}

// CampaignStore manages saved campaigns. Every mutation is persisted before
// returning; a rejected write is reported with ErrPersistenceWrite while the
// in-memory change is kept.
type CampaignStore interface {
	Save(ctx context.Context) (*domain.Campaign, error)
	// Duplicate returns nil without error when id does not exist.
	Duplicate(ctx context.Context, id int64) (*domain.Campaign, error)
	Delete(ctx context.Context, id int64, confirm Confirmer) error
	List(filter string) []domain.Campaign
	// View loads a saved campaign into the current draft. It returns nil
	// when id does not exist.
	View(ctx context.Context, id int64) (*domain.Draft, error)
}

// MetricsReader exposes the simulated dashboard numbers.
type MetricsReader interface {
	Snapshot() domain.Metrics
	Series() domain.HourlySeries
	Window() domain.HourlySeries
	Activity() []domain.Activity
}

// ChatAssistant answers free-text questions.
type ChatAssistant interface {
	Respond(ctx context.Context, message string) (*domain.ChatReply, error)
	Transcript() []domain.ChatMessage
	Clear(ctx context.Context, confirm Confirmer) error
}

// Exporter renders analytics and drafts for download.
type Exporter interface {
	ExportJSON(ctx context.Context) ([]byte, error)
	ExportCSV(ctx context.Context) string
	ExportDraft(ctx context.Context) (*DraftExport, error)
}

// SettingsManager owns the persisted preferences.
type SettingsManager interface {
	Theme(ctx context.Context) (domain.Theme, error)
	SetTheme(ctx context.Context, theme domain.Theme) error
	SetAPIKey(ctx context.Context, key string) error
}

// TrendCatalog serves the trends panel.
type TrendCatalog interface {
	Trends() []domain.Trend
	ApplyTrend(title, brief string) string
}

// NotificationFeed serves the notification panel.
type NotificationFeed interface {
	List() []domain.Notification
	MarkRead(id string) bool
	UnreadCount() int
}

// GenerateResult is returned by CampaignGenerator.Generate. It is a DTO used
// by the HTTP layer and does not contain domain behaviour.
type GenerateResult struct {
	Draft      domain.Draft      `json:"draft"`
	Prediction domain.Prediction `json:"predictions"`
	Fallback   bool              `json:"fallback"`
	Warning    string            `json:"warning,omitempty"`
}

// DraftExport is the downloadable form of the current draft.
type DraftExport struct {
	FileName string `json:"fileName"`
	Body     []byte `json:"-"`
}
