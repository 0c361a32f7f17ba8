package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSettingsHandler_List(t *testing.T) {
	s := newTestStore(t)
	if err := s.Settings().Set(store.SettingCameraID, "1"); err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}

	handler := NewSettingsHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response settingsResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Settings[store.SettingCameraID] != "1" {
		t.Errorf("expected camera_id=1, got %q", response.Settings[store.SettingCameraID])
	}
}

func TestSettingsHandler_Update(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s)

	body := `{"motion_threshold": "2.5", "detection_enabled": "true"}`
	req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	if got := s.Settings().GetFloat(store.SettingMotionThresh, 0); got != 2.5 {
		t.Errorf("motion_threshold = %f, want 2.5", got)
	}
	if got := s.Settings().GetBool(store.SettingDetectionOn, false); !got {
		t.Error("detection_enabled should be true after update")
	}
}

func TestSettingsHandler_UpdateValidation(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "invalid JSON", body: "{", want: http.StatusBadRequest},
		{name: "empty object", body: "{}", want: http.StatusBadRequest},
		{name: "unknown key", body: `{"volume": "11"}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestSettingsHandler_MethodNotAllowed(t *testing.T) {
	s := newTestStore(t)
	handler := NewSettingsHandler(s)

	for _, method := range []string{http.MethodPost, http.MethodDelete, http.MethodPatch} {
		req := httptest.NewRequest(method, "/api/settings", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
		}
	}
}
