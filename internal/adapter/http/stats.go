package httpadapter

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"creativesync/internal/core/port"
)

func (h *Handler) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Metrics.Snapshot())
}

// handleSeries returns the 24-point hourly series, or the chart window when
// window=true.
func (h *Handler) handleSeries(w http.ResponseWriter, r *http.Request) {
	if window, _ := strconv.ParseBool(r.URL.Query().Get("window")); window {
		h.writeJSON(w, http.StatusOK, h.svc.Metrics.Window())
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.Metrics.Series())
}

func (h *Handler) handleActivity(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Metrics.Activity())
}

// handleExport downloads the analytics snapshot. format is json (default)
// or csv.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	stamp := time.Now().UnixMilli()
	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		body, err := h.svc.Export.ExportJSON(r.Context())
		if err != nil {
			h.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"creativesync-analytics-%d.json\"", stamp))
		_, _ = w.Write(body)
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"creativesync-campaigns-%d.csv\"", stamp))
		_, _ = w.Write([]byte(h.svc.Export.ExportCSV(r.Context())))
	default:
		h.writeError(w, fmt.Errorf("%q: %w", format, port.ErrUnknownFormat))
	}
}
