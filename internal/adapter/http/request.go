package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"creativesync/internal/core/port"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// decodeJSON reads the request body into dst. On failure it writes HTTP 400
// and returns false.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// encoding should rarely fail; the status line is already sent
		h.logger.Error("encode response error", zap.Error(err))
	}
}

// writeError maps use-case errors onto status codes. Unknown errors are
// logged and hidden behind HTTP 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, port.ErrMissingInput),
		errors.Is(err, port.ErrInvalidAPIKey),
		errors.Is(err, port.ErrInvalidTheme),
		errors.Is(err, port.ErrUnknownFormat):
		status = http.StatusBadRequest
	case errors.Is(err, port.ErrNoActiveDraft):
		status = http.StatusConflict
	case errors.Is(err, port.ErrNotConfirmed):
		status = http.StatusPreconditionFailed
	case errors.Is(err, port.ErrUnknownVariant):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
		h.writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// persistenceWarning splits a mutation result: a persistence failure is a
// warning returned with the record, anything else is an error.
func persistenceWarning(err error) (string, error) {
	if err == nil {
		return "", nil
	}
	if errors.Is(err, port.ErrPersistenceWrite) {
		return "Changes are kept for this session but could not be saved: " + err.Error(), nil
	}
	return "", err
}

// confirmFromQuery accepts destructive commands carrying confirm=true.
func confirmFromQuery(r *http.Request) port.Confirmer {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return port.ConfirmFunc(func(context.Context, string) bool { return ok })
}

func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}
