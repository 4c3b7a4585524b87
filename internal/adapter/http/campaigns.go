package httpadapter

import (
	"net/http"

	"creativesync/internal/core/domain"
)

type campaignResponse struct {
	Campaign *domain.Campaign `json:"campaign"`
	Warning  string           `json:"warning,omitempty"`
}

// handleSaveCampaign saves the current draft. A failed write still answers
// 201 with a warning since the campaign is kept in memory.
func (h *Handler) handleSaveCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Campaigns.Save(r.Context())
	warning, err := persistenceWarning(err)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, campaignResponse{Campaign: c, Warning: warning})
}

// handleListCampaigns returns the history, filtered by the q parameter.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Campaigns.List(r.URL.Query().Get("q")))
}

func (h *Handler) handleViewCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}
	draft, err := h.svc.Campaigns.View(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if draft == nil {
		http.NotFound(w, r)
		return
	}
	h.writeJSON(w, http.StatusOK, draft)
}

func (h *Handler) handleDuplicateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}
	c, err := h.svc.Campaigns.Duplicate(r.Context(), id)
	warning, err := persistenceWarning(err)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if c == nil {
		http.NotFound(w, r)
		return
	}
	h.writeJSON(w, http.StatusCreated, campaignResponse{Campaign: c, Warning: warning})
}

// handleDeleteCampaign requires confirm=true. Unknown ids are not an error.
func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid campaign id"})
		return
	}
	warning, err := persistenceWarning(h.svc.Campaigns.Delete(r.Context(), id, confirmFromQuery(r)))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if warning != "" {
		h.writeJSON(w, http.StatusOK, map[string]string{"warning": warning})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
