package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
)

type fakeHistory struct {
	results  []gesture.Result
	lastN    int
	wasAsked bool
}

func (f *fakeHistory) Recent(n int) []gesture.Result {
	f.lastN = n
	f.wasAsked = true
	if n > len(f.results) {
		n = len(f.results)
	}
	return f.results[:n]
}

func TestHistoryHandler_List(t *testing.T) {
	at := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	history := &fakeHistory{results: []gesture.Result{
		{Label: gesture.LabelThumbsUp, Confidence: 0.90, At: at},
		{Label: gesture.LabelOpenHand, Confidence: 0.95, At: at.Add(-time.Second)},
	}}
	handler := NewHistoryHandler(history)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response historyResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(response.Entries))
	}

	first := response.Entries[0]
	if first.Label != "thumbs_up" {
		t.Errorf("expected label thumbs_up, got %s", first.Label)
	}
	if first.Glyph != "👍" {
		t.Errorf("expected glyph 👍, got %s", first.Glyph)
	}
	if first.Name != "Thumbs Up" {
		t.Errorf("expected name Thumbs Up, got %s", first.Name)
	}
	if first.Confidence != 0.90 {
		t.Errorf("expected confidence 0.90, got %f", first.Confidence)
	}
	if first.At != "2026-03-14T10:00:00Z" {
		t.Errorf("unexpected timestamp format: %s", first.At)
	}
}

func TestHistoryHandler_Limit(t *testing.T) {
	history := &fakeHistory{}
	handler := NewHistoryHandler(history)

	t.Run("defaults to full capacity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if history.lastN != gesture.HistoryCapacity {
			t.Errorf("expected default limit %d, got %d", gesture.HistoryCapacity, history.lastN)
		}
	})

	t.Run("honors explicit limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/history?limit=3", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if history.lastN != 3 {
			t.Errorf("expected limit 3, got %d", history.lastN)
		}
	})

	t.Run("rejects invalid limits", func(t *testing.T) {
		for _, raw := range []string{"0", "-1", "abc"} {
			req := httptest.NewRequest(http.MethodGet, "/api/history?limit="+raw, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("limit %q: expected status %d, got %d", raw, http.StatusBadRequest, rec.Code)
			}
		}
	})
}

func TestHistoryHandler_MethodNotAllowed(t *testing.T) {
	handler := NewHistoryHandler(&fakeHistory{})

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		req := httptest.NewRequest(method, "/api/history", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("method %s: expected status %d, got %d", method, http.StatusMethodNotAllowed, rec.Code)
		}
	}
}

func TestHistoryHandler_Empty(t *testing.T) {
	handler := NewHistoryHandler(&fakeHistory{})

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var response historyResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Entries == nil {
		t.Error("entries should be an empty array, not null")
	}
	if len(response.Entries) != 0 {
		t.Errorf("expected 0 entries, got %d", len(response.Entries))
	}
}
