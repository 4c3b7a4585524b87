package httpadapter

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"creativesync/internal/core/domain"
	"creativesync/internal/core/port"
)

// handleGenerate drafts a campaign from the create form. The result always
// carries copy; Fallback marks demo content.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	res, err := h.svc.Generator.Generate(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handler) handleDraft(w http.ResponseWriter, _ *http.Request) {
	draft, ok := h.svc.Drafts.Get()
	if !ok {
		h.writeError(w, port.ErrNoActiveDraft)
		return
	}
	h.writeJSON(w, http.StatusOK, draft)
}

// handleDraftExport downloads the current draft as a JSON file.
func (h *Handler) handleDraftExport(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Export.ExportDraft(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(out.FileName))
	_, _ = w.Write(out.Body)
}

type variantsRequest struct {
	Brief string `json:"brief"`
	Name  string `json:"name"`
}

// handleVariants runs the three-variant generation. It blocks for the
// whole paced run.
func (h *Handler) handleVariants(w http.ResponseWriter, r *http.Request) {
	var req variantsRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	set, err := h.svc.Variants.GenerateVariants(r.Context(), req.Brief, req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, set)
}

func (h *Handler) handleSelectVariant(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid variant number"})
		return
	}
	draft, err := h.svc.Variants.SelectVariant(r.Context(), n)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, draft)
}
