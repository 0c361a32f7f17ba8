package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/store"
)

// knownSettings lists the keys the API accepts for updates.
var knownSettings = map[string]bool{
	store.SettingCameraID:      true,
	store.SettingMotionThresh:  true,
	store.SettingMinConfidence: true,
	store.SettingDetectionOn:   true,
	store.SettingListenAddr:    true,
	store.SettingStaticDir:     true,
}

// SettingsHandler handles HTTP requests for runtime settings.
type SettingsHandler struct {
	store *store.Store
}

// NewSettingsHandler creates a new SettingsHandler with the given store.
func NewSettingsHandler(s *store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

type settingsResponse struct {
	Settings map[string]string `json:"settings"`
}

// ServeHTTP routes requests for /api/settings.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// list handles GET /api/settings and returns all stored settings.
func (h *SettingsHandler) list(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{Settings: settings})
}

// update handles PUT /api/settings and upserts the provided keys.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req) == 0 {
		writeError(w, http.StatusBadRequest, "No settings provided")
		return
	}

	for key := range req {
		if !knownSettings[key] {
			writeError(w, http.StatusBadRequest, "Unknown setting: "+key)
			return
		}
	}

	for key, value := range req {
		if err := h.store.Settings().Set(key, value); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to save setting")
			return
		}
	}

	settings, err := h.store.Settings().All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings")
		return
	}

	writeJSON(w, http.StatusOK, settingsResponse{Settings: settings})
}
