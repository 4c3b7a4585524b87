package httpadapter

import "net/http"

type chatRequest struct {
	Message string `json:"message"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	reply, err := h.svc.Chat.Respond(r.Context(), req.Message)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reply)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Chat.Transcript())
}

// handleClearChat requires confirm=true.
func (h *Handler) handleClearChat(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Chat.Clear(r.Context(), confirmFromQuery(r)); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.Chat.Transcript())
}
