// Package api provides HTTP API handlers for the Mudra gesture service.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ayusman/mudra/internal/gesture"
)

// HistoryProvider supplies recent classification results, most recent first.
type HistoryProvider interface {
	Recent(n int) []gesture.Result
}

// HistoryHandler handles HTTP requests for the gesture history.
type HistoryHandler struct {
	history HistoryProvider
}

// NewHistoryHandler creates a new HistoryHandler backed by the given provider.
func NewHistoryHandler(history HistoryProvider) *HistoryHandler {
	return &HistoryHandler{history: history}
}

type historyEntry struct {
	Label      string  `json:"label"`
	Glyph      string  `json:"glyph"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	At         string  `json:"at"`
}

type historyResponse struct {
	Entries []historyEntry `json:"entries"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// ServeHTTP handles GET /api/history?limit=n.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := gesture.HistoryCapacity
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	results := h.history.Recent(limit)

	response := historyResponse{
		Entries: make([]historyEntry, 0, len(results)),
	}
	for _, res := range results {
		meta := res.Meta()
		response.Entries = append(response.Entries, historyEntry{
			Label:      string(res.Label),
			Glyph:      meta.Glyph,
			Name:       meta.Name,
			Confidence: res.Confidence,
			At:         res.At.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
