package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"creativesync/internal/core/domain"
)

type settingsResponse struct {
	Theme   domain.Theme `json:"theme"`
	AIReady bool         `json:"aiReady"`
}

func (h *Handler) handleSettings(w http.ResponseWriter, r *http.Request) {
	theme, err := h.svc.Settings.Theme(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	resp := settingsResponse{Theme: theme}
	if h.svc.AIReady != nil {
		resp.AIReady = h.svc.AIReady()
	}
	h.writeJSON(w, http.StatusOK, resp)
}

type themeRequest struct {
	Theme domain.Theme `json:"theme"`
}

func (h *Handler) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.Settings.SetTheme(r.Context(), req.Theme); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, req)
}

type apiKeyRequest struct {
	APIKey string `json:"apiKey"`
}

// handleSetAPIKey activates a new Gemini key. The key is never echoed back.
func (h *Handler) handleSetAPIKey(w http.ResponseWriter, r *http.Request) {
	var req apiKeyRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	warning, err := persistenceWarning(h.svc.Settings.SetAPIKey(r.Context(), req.APIKey))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, apiKeyResponse{AIReady: true, Warning: warning})
}

type apiKeyResponse struct {
	AIReady bool   `json:"aiReady"`
	Warning string `json:"warning,omitempty"`
}

func (h *Handler) handleTrends(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Trends.Trends())
}

type applyTrendRequest struct {
	Title string `json:"title"`
	Brief string `json:"brief"`
}

func (h *Handler) handleApplyTrend(w http.ResponseWriter, r *http.Request) {
	var req applyTrendRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"brief": h.svc.Trends.ApplyTrend(req.Title, req.Brief)})
}

type notificationsResponse struct {
	Items  []domain.Notification `json:"items"`
	Unread int                   `json:"unread"`
}

func (h *Handler) handleNotifications(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, notificationsResponse{
		Items:  h.svc.Notifications.List(),
		Unread: h.svc.Notifications.UnreadCount(),
	})
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Notifications.MarkRead(chi.URLParam(r, "id")) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
