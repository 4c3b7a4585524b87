package httpadapter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

// DraftReader exposes the current draft.
type DraftReader interface {
	Get() (domain.Draft, bool)
}

// Services groups the use cases served over HTTP.
type Services struct {
	Generator     port.CampaignGenerator
	Variants      port.VariantGenerator
	Campaigns     port.CampaignStore
	Drafts        DraftReader
	Metrics       port.MetricsReader
	Chat          port.ChatAssistant
	Export        port.Exporter
	Settings      port.SettingsManager
	Trends        port.TrendCatalog
	Notifications port.NotificationFeed
	// Stream serves the live metrics websocket. It may be nil.
	Stream http.Handler
	// AIReady reports whether a text-generation key is active. It may be nil.
	AIReady func() bool
}

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP: every dashboard command is one route under /api/v1.
type Handler struct {
	svc    Services
	logger *zap.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc Services, allowedOrigins []string, logger *zap.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", h.handleGenerate)
		r.Get("/draft", h.handleDraft)
		r.Get("/draft/export", h.handleDraftExport)

		r.Post("/variants", h.handleVariants)
		r.Post("/variants/{n}/select", h.handleSelectVariant)

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.handleListCampaigns)
			r.Post("/", h.handleSaveCampaign)
			r.Post("/{id}/view", h.handleViewCampaign)
			r.Post("/{id}/duplicate", h.handleDuplicateCampaign)
			r.Delete("/{id}", h.handleDeleteCampaign)
		})

		r.Get("/metrics", h.handleMetrics)
		r.Get("/metrics/series", h.handleSeries)
		r.Get("/activity", h.handleActivity)
		r.Get("/export", h.handleExport)
		if svc.Stream != nil {
			r.Handle("/ws", svc.Stream)
		}

		r.Get("/chat", h.handleTranscript)
		r.Post("/chat", h.handleChat)
		r.Delete("/chat", h.handleClearChat)

		r.Get("/trends", h.handleTrends)
		r.Post("/trends/apply", h.handleApplyTrend)

		r.Get("/notifications", h.handleNotifications)
		r.Post("/notifications/{id}/read", h.handleMarkRead)

		r.Get("/settings", h.handleSettings)
		r.Put("/settings/theme", h.handleSetTheme)
		r.Put("/settings/api-key", h.handleSetAPIKey)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("took", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
